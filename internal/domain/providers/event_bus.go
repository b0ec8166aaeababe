package providers

import (
	"context"

	"github.com/swasthly/healthassist/internal/domain/entities"
)

// EventBus distributes consultation lifecycle events to interested
// subscribers across instances.
type EventBus interface {
	// Publish publishes an event to all subscribers of a channel
	Publish(ctx context.Context, channel string, event *entities.ConsultationEvent) error

	// Subscribe returns a channel of events; it is closed when ctx is done
	Subscribe(ctx context.Context, channel string) (<-chan *entities.ConsultationEvent, error)

	// Close shuts down the bus and releases subscriptions
	Close() error
}
