package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/swasthly/healthassist/internal/domain/entities"
	"github.com/swasthly/healthassist/internal/domain/providers"
)

// MockAdapter simulates the consultation scheduling backend with
// deterministic slots and an explicit latency bound. It replaces a timer
// faking network delay: Schedule either returns a booking reference and
// meeting link or an error, and always observes ctx cancellation.
type MockAdapter struct {
	slotDuration time.Duration
	maxSlots     int
	latency      time.Duration
}

var _ providers.SchedulingProvider = (*MockAdapter)(nil)

// NewMockAdapter creates a mock scheduling provider.
func NewMockAdapter() *MockAdapter {
	return &MockAdapter{
		slotDuration: 30 * time.Minute,
		maxSlots:     6,
		latency:      150 * time.Millisecond,
	}
}

// NewMockAdapterWithLatency creates a mock provider with a custom simulated
// latency (used for tests).
func NewMockAdapterWithLatency(latency time.Duration) *MockAdapter {
	adapter := NewMockAdapter()
	adapter.latency = latency
	return adapter
}

// GetAvailableSlots returns sample slots within the requested range.
func (m *MockAdapter) GetAvailableSlots(ctx context.Context, doctorID string, from, to time.Time) ([]entities.AvailabilitySlot, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("invalid time range")
	}
	if err := m.simulateLatency(ctx); err != nil {
		return nil, err
	}

	slots := make([]entities.AvailabilitySlot, 0, m.maxSlots)
	cursor := from.Truncate(time.Minute).Add(30 * time.Minute)
	for cursor.Before(to) && len(slots) < m.maxSlots {
		slots = append(slots, entities.AvailabilitySlot{
			DoctorID: doctorID,
			StartAt:  cursor,
			EndAt:    cursor.Add(m.slotDuration),
		})
		cursor = cursor.Add(m.slotDuration)
	}

	return slots, nil
}

// Schedule returns a mock booking reference and meeting link.
func (m *MockAdapter) Schedule(ctx context.Context, consultation *entities.Consultation) (string, string, error) {
	if consultation == nil {
		return "", "", fmt.Errorf("consultation is required")
	}
	if err := m.simulateLatency(ctx); err != nil {
		return "", "", err
	}

	id := fmt.Sprintf("mock-%d", time.Now().UnixNano())
	return id, fmt.Sprintf("https://meet.healthassist.example/%s", id), nil
}

func (m *MockAdapter) simulateLatency(ctx context.Context) error {
	if m.latency <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(m.latency):
		return nil
	}
}
