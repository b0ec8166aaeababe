package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/swasthly/healthassist/internal/domain/entities"
	"github.com/swasthly/healthassist/internal/domain/repositories"
	apperrors "github.com/swasthly/healthassist/pkg/errors"
)

const defaultMoodHistoryLimit = 30

// WellnessService handles mood tracking for the mental wellness pages.
type WellnessService struct {
	repo repositories.MoodRepository
	now  func() time.Time
}

// NewWellnessService creates a new wellness service.
func NewWellnessService(repo repositories.MoodRepository) *WellnessService {
	return &WellnessService{repo: repo, now: time.Now}
}

// RecordMood stores one mood check-in.
func (s *WellnessService) RecordMood(ctx context.Context, entry *entities.MoodEntry) error {
	if strings.TrimSpace(entry.UserID) == "" {
		return apperrors.NewValidationError("user id is required")
	}
	if strings.TrimSpace(entry.Mood) == "" {
		return apperrors.NewValidationError("mood is required")
	}
	if entry.Intensity < 1 || entry.Intensity > 5 {
		return apperrors.NewValidationError("intensity must be between 1 and 5")
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = s.now()
	}

	return s.repo.Create(ctx, entry)
}

// History returns a user's recent mood entries, most recent first.
func (s *WellnessService) History(ctx context.Context, userID string, limit int) ([]*entities.MoodEntry, error) {
	if limit <= 0 {
		limit = defaultMoodHistoryLimit
	}
	return s.repo.ListByUser(ctx, userID, limit)
}

// Summary aggregates a user's recent entries into per-mood counts and an
// average intensity.
func (s *WellnessService) Summary(ctx context.Context, userID string, limit int) (*entities.MoodSummary, error) {
	entries, err := s.History(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	summary := &entities.MoodSummary{
		UserID:     userID,
		MoodCounts: map[string]int{},
	}

	total := 0
	for _, entry := range entries {
		summary.MoodCounts[entry.Mood]++
		total += entry.Intensity
	}
	summary.TotalEntries = len(entries)
	if summary.TotalEntries > 0 {
		summary.AvgIntensity = float64(total) / float64(summary.TotalEntries)
	}

	return summary, nil
}
