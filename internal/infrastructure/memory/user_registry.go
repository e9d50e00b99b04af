// Package memory holds the process-lifetime stores backing the marketplace.
// The registries are not safe for concurrent use on their own; the
// marketplace service serialises access to them.
package memory

import (
	"github.com/gigboard/marketplace/internal/core/domain"
)

// UserRegistry is the in-memory store of users keyed by id.
type UserRegistry struct {
	users map[string]*domain.User
}

func NewUserRegistry() *UserRegistry {
	return &UserRegistry{users: make(map[string]*domain.User)}
}

// Register creates a user with zero counters. Any id is accepted, including "".
func (r *UserRegistry) Register(id string) error {
	if _, ok := r.users[id]; ok {
		return domain.ErrUserExists
	}
	r.users[id] = &domain.User{ID: id}
	return nil
}

// Get returns a copy of the stored user.
func (r *UserRegistry) Get(id string) (domain.User, bool) {
	u, ok := r.users[id]
	if !ok {
		return domain.User{}, false
	}
	return *u, true
}

func (r *UserRegistry) AdjustReputation(id string, delta int64) {
	if u, ok := r.users[id]; ok {
		u.Reputation += delta
	}
}

func (r *UserRegistry) IncrementAssigned(id string) {
	if u, ok := r.users[id]; ok {
		u.AssignedJobs++
	}
}

func (r *UserRegistry) IncrementCompleted(id string) {
	if u, ok := r.users[id]; ok {
		u.CompletedJobs++
	}
}
