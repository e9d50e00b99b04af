package ports

import "github.com/gigboard/marketplace/internal/core/domain"

// JobRepository is the keyed store of jobs. It performs no transition checks.
type JobRepository interface {
	Insert(job domain.Job)
	Get(id string) (domain.Job, bool)
	// ListAll returns every job in unspecified order.
	ListAll() []domain.Job
	ListByStatus(status domain.JobStatus) []domain.Job
	// SetStatus overwrites the status of an existing job.
	SetStatus(id string, status domain.JobStatus) error
	// Assign records the freelancer and moves the job to assigned.
	Assign(id, freelancer string) error
}
