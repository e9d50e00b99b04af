package domain

import "time"

// ActivityKind names the mutation an ActivityEvent records.
type ActivityKind string

const (
	ActivityUserRegistered  ActivityKind = "user_registered"
	ActivityJobPosted       ActivityKind = "job_posted"
	ActivityJobAssigned     ActivityKind = "job_assigned"
	ActivityStatusChanged   ActivityKind = "status_changed"
	ActivityJobCompleted    ActivityKind = "job_completed"
	ActivityDisputeResolved ActivityKind = "dispute_resolved"
)

// ActivityEvent is an audit record of a successful mutation.
type ActivityEvent struct {
	Kind      ActivityKind
	JobID     string    // empty for user-only events
	UserID    string    // client, freelancer or dispute party
	Status    JobStatus // resulting job status, when applicable
	Delta     int64     // reputation change applied, when applicable
	Timestamp time.Time
}
