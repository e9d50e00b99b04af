package domain

import (
	"errors"
	"strings"
	"time"
)

// JobStatus represents the lifecycle state of a job.
type JobStatus string

const (
	StatusOpen      JobStatus = "open"
	StatusAssigned  JobStatus = "assigned"
	StatusCompleted JobStatus = "completed"
	StatusDisputed  JobStatus = "disputed"
)

// validTransitions is the conventional job state machine. It is consulted by
// AssignJob only; SetJobStatus and CompleteJob overwrite status unconditionally.
var validTransitions = map[JobStatus][]JobStatus{
	StatusOpen:     {StatusAssigned, StatusDisputed},
	StatusAssigned: {StatusCompleted, StatusDisputed},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrInvalidStatus = errors.New("invalid job status")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether s is one of the known statuses.
func (s JobStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusAssigned, StatusCompleted, StatusDisputed:
		return true
	}
	return false
}

// ParseJobStatus accepts the canonical lowercase names, case-insensitively.
func ParseJobStatus(raw string) (JobStatus, error) {
	s := JobStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// Job is a unit of work posted by a client.
type Job struct {
	ID          string    `json:"id" bson:"id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Budget      uint64    `json:"budget" bson:"budget"`
	Client      string    `json:"client" bson:"client"`
	Freelancer  *string   `json:"freelancer,omitempty" bson:"freelancer,omitempty"` // absent until assignment
	Status      JobStatus `json:"status" bson:"status"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
