package repositories

import (
	"context"

	"github.com/swasthly/healthassist/internal/domain/entities"
)

// UserRepository persists user health profiles.
type UserRepository interface {
	// GetByID returns one profile or a NOT_FOUND error
	GetByID(ctx context.Context, id string) (*entities.UserProfile, error)

	// Update stores changes to an existing profile
	Update(ctx context.Context, profile *entities.UserProfile) error
}
