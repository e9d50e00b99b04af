package memory

import (
	"github.com/gigboard/marketplace/internal/core/domain"
)

// JobRegistry is the in-memory store of jobs keyed by id.
type JobRegistry struct {
	jobs map[string]*domain.Job
}

func NewJobRegistry() *JobRegistry {
	return &JobRegistry{jobs: make(map[string]*domain.Job)}
}

// Insert stores job under its id. Ids are unique by construction; a repeated
// id replaces the previous entry.
func (r *JobRegistry) Insert(job domain.Job) {
	clone := cloneJob(job)
	r.jobs[job.ID] = &clone
}

func (r *JobRegistry) Get(id string) (domain.Job, bool) {
	j, ok := r.jobs[id]
	if !ok {
		return domain.Job{}, false
	}
	return cloneJob(*j), true
}

// ListAll returns copies of every job. Order follows map iteration.
func (r *JobRegistry) ListAll() []domain.Job {
	out := make([]domain.Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		out = append(out, cloneJob(*j))
	}
	return out
}

func (r *JobRegistry) ListByStatus(status domain.JobStatus) []domain.Job {
	out := make([]domain.Job, 0)
	for _, j := range r.jobs {
		if j.Status == status {
			out = append(out, cloneJob(*j))
		}
	}
	return out
}

// SetStatus overwrites the status with no transition check.
func (r *JobRegistry) SetStatus(id string, status domain.JobStatus) error {
	j, ok := r.jobs[id]
	if !ok {
		return domain.ErrJobNotFound
	}
	j.Status = status
	return nil
}

func (r *JobRegistry) Assign(id, freelancer string) error {
	j, ok := r.jobs[id]
	if !ok {
		return domain.ErrJobNotFound
	}
	f := freelancer
	j.Freelancer = &f
	j.Status = domain.StatusAssigned
	return nil
}

// cloneJob copies j including the freelancer string, so callers never share
// memory with the stored job.
func cloneJob(j domain.Job) domain.Job {
	if j.Freelancer != nil {
		f := *j.Freelancer
		j.Freelancer = &f
	}
	return j
}
