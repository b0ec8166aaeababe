package services

import (
	"context"

	"github.com/swasthly/healthassist/internal/domain/entities"
	"github.com/swasthly/healthassist/internal/domain/repositories"
)

// ReportService surfaces stored health report references.
type ReportService struct {
	repo repositories.HealthReportRepository
}

// NewReportService creates a new report service.
func NewReportService(repo repositories.HealthReportRepository) *ReportService {
	return &ReportService{repo: repo}
}

// ListByUser returns a user's reports, newest report date first.
func (s *ReportService) ListByUser(ctx context.Context, userID string) ([]*entities.HealthReport, error) {
	return s.repo.ListByUser(ctx, userID)
}

// GetByID returns one report.
func (s *ReportService) GetByID(ctx context.Context, id string) (*entities.HealthReport, error) {
	return s.repo.GetByID(ctx, id)
}
