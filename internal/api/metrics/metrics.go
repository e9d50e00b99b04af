// Package metrics defines and registers all custom Prometheus metrics for the
// marketplace API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── User metrics ──────────────────────────────────────────────────────────────

// UsersRegisteredTotal counts successful registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of users registered.",
	},
)

// ── Job metrics ───────────────────────────────────────────────────────────────

// JobsPostedTotal counts newly posted jobs.
// Label:
//   - replay: "true" when an Idempotency-Key matched an earlier request
var JobsPostedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_posted_total",
		Help:      "Total number of job post requests, by idempotent replay.",
	},
	[]string{"replay"},
)

// JobStatusChangesTotal counts status changes applied through any operation.
// Labels:
//   - status: the resulting job status
//   - operation: "set_status", "assign" or "complete"
var JobStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_status_changes_total",
		Help:      "Total number of job status changes, by resulting status and operation.",
	},
	[]string{"status", "operation"},
)

// DisputesResolvedTotal counts dispute resolutions.
// Label:
//   - outcome: "won" or "lost"
var DisputesResolvedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "disputes_resolved_total",
		Help:      "Total number of disputes resolved, by outcome for the named user.",
	},
	[]string{"outcome"},
)

// ── Activity audit metrics ────────────────────────────────────────────────────

// ActivityQueueDepth tracks the number of audit events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityRecordedTotal counts audit events written to the sink.
var ActivityRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_recorded_total",
		Help:      "Total number of audit events recorded, by kind.",
	},
	[]string{"kind"},
)

// ActivityDroppedTotal counts audit events that never reached a worker.
// Label:
//   - reason: "queue_full" or "closed"
var ActivityDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_dropped_total",
		Help:      "Total number of audit events dropped before delivery.",
	},
	[]string{"reason"},
)

// ActivityErrorsTotal counts audit events the sink failed to store.
var ActivityErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_errors_total",
		Help:      "Total number of audit events that failed to be recorded.",
	},
)
