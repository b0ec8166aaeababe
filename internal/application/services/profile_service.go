package services

import (
	"context"
	"strings"

	"github.com/swasthly/healthassist/internal/domain/entities"
	"github.com/swasthly/healthassist/internal/domain/repositories"
	apperrors "github.com/swasthly/healthassist/pkg/errors"
)

// ProfileService handles user health profiles.
type ProfileService struct {
	repo repositories.UserRepository
}

// NewProfileService creates a new profile service.
func NewProfileService(repo repositories.UserRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// GetByID returns one profile.
func (s *ProfileService) GetByID(ctx context.Context, id string) (*entities.UserProfile, error) {
	return s.repo.GetByID(ctx, id)
}

// Update stores changes to an existing profile.
func (s *ProfileService) Update(ctx context.Context, profile *entities.UserProfile) error {
	if strings.TrimSpace(profile.ID) == "" {
		return apperrors.NewValidationError("profile id is required")
	}
	if strings.TrimSpace(profile.Name) == "" {
		return apperrors.NewValidationError("name is required")
	}
	if strings.TrimSpace(profile.Email) == "" {
		return apperrors.NewValidationError("email is required")
	}

	return s.repo.Update(ctx, profile)
}
