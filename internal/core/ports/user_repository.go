package ports

import "github.com/gigboard/marketplace/internal/core/domain"

// UserRepository is the keyed store of users. Mutators are silent no-ops when
// the id is unknown because jobs may reference clients that never registered.
type UserRepository interface {
	Register(id string) error
	Get(id string) (domain.User, bool)
	AdjustReputation(id string, delta int64)
	IncrementAssigned(id string)
	IncrementCompleted(id string)
}
