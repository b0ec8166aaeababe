package providers

import (
	"context"
	"time"

	"github.com/swasthly/healthassist/internal/domain/entities"
)

// SchedulingProvider is the boundary to the consultation scheduling backend.
// Schedule either succeeds with an external booking reference and meeting
// link or fails with an error; there is no fire-and-forget path.
type SchedulingProvider interface {
	// GetAvailableSlots returns bookable slots for a doctor in [from, to)
	GetAvailableSlots(ctx context.Context, doctorID string, from, to time.Time) ([]entities.AvailabilitySlot, error)

	// Schedule books the consultation and returns the provider's booking
	// reference and the meeting link
	Schedule(ctx context.Context, consultation *entities.Consultation) (externalID string, meetingLink string, err error)
}
