package repositories

import (
	"context"

	"github.com/swasthly/healthassist/internal/domain/entities"
)

// ConsultationRepository persists video consultation bookings.
type ConsultationRepository interface {
	// Create stores a new consultation
	Create(ctx context.Context, consultation *entities.Consultation) error

	// GetByID returns one consultation or a NOT_FOUND error
	GetByID(ctx context.Context, id string) (*entities.Consultation, error)

	// ListByUser returns a user's consultations, most recent first
	ListByUser(ctx context.Context, userID string, limit int) ([]*entities.Consultation, error)

	// UpdateStatus transitions a consultation's lifecycle state
	UpdateStatus(ctx context.Context, id string, status entities.ConsultationStatus) error
}
