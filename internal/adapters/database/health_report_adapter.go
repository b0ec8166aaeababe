package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/swasthly/healthassist/internal/domain/entities"
	"github.com/swasthly/healthassist/internal/domain/repositories"
	"github.com/swasthly/healthassist/internal/infrastructure/clients/postgres"
	apperrors "github.com/swasthly/healthassist/pkg/errors"
)

// HealthReportAdapter implements the HealthReportRepository interface
type HealthReportAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewHealthReportAdapter creates a new health report adapter
func NewHealthReportAdapter(client *postgres.Client) repositories.HealthReportRepository {
	return &HealthReportAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListByUser retrieves a user's reports, newest report date first
func (a *HealthReportAdapter) ListByUser(ctx context.Context, userID string) ([]*entities.HealthReport, error) {
	query, args, err := a.db.Select(
		"id", "user_id", "title", "category", "summary", "file_url",
		"report_date", "created_at",
	).From("health_reports").
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("report_date").Desc()).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list health reports", err)
	}
	defer rows.Close()

	var reports []*entities.HealthReport
	for rows.Next() {
		report, err := scanHealthReport(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan health report", err)
		}
		reports = append(reports, report)
	}

	return reports, nil
}

// GetByID retrieves a report by ID
func (a *HealthReportAdapter) GetByID(ctx context.Context, id string) (*entities.HealthReport, error) {
	query, args, err := a.db.Select(
		"id", "user_id", "title", "category", "summary", "file_url",
		"report_date", "created_at",
	).From("health_reports").
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	report, err := scanHealthReport(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("health report with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get health report", err)
	}

	return report, nil
}

func scanHealthReport(row rowScanner) (*entities.HealthReport, error) {
	report := &entities.HealthReport{}
	var summary, fileURL sql.NullString

	err := row.Scan(
		&report.ID,
		&report.UserID,
		&report.Title,
		&report.Category,
		&summary,
		&fileURL,
		&report.ReportDate,
		&report.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	report.Summary = summary.String
	report.FileURL = fileURL.String

	return report, nil
}
