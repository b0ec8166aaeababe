package repositories

import (
	"context"

	"github.com/swasthly/healthassist/internal/domain/entities"
)

// MoodRepository persists mood check-ins.
type MoodRepository interface {
	// Create stores a new mood entry
	Create(ctx context.Context, entry *entities.MoodEntry) error

	// ListByUser returns a user's entries, most recent first
	ListByUser(ctx context.Context, userID string, limit int) ([]*entities.MoodEntry, error)
}
