package ports

import (
	"context"

	"github.com/gigboard/marketplace/internal/core/domain"
)

// ActivityPublisher hands audit events to the delivery pipeline. Publish must
// not block on I/O.
type ActivityPublisher interface {
	Publish(event domain.ActivityEvent)
}

// ActivityRepository persists audit events.
type ActivityRepository interface {
	InsertActivity(ctx context.Context, event domain.ActivityEvent) error
}
