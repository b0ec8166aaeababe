package repositories

import (
	"context"

	"github.com/swasthly/healthassist/internal/domain/entities"
)

// HealthReportRepository reads stored health report references.
type HealthReportRepository interface {
	// ListByUser returns a user's reports, newest report date first
	ListByUser(ctx context.Context, userID string) ([]*entities.HealthReport, error)

	// GetByID returns one report or a NOT_FOUND error
	GetByID(ctx context.Context, id string) (*entities.HealthReport, error)
}
