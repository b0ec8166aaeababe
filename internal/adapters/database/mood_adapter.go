package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/swasthly/healthassist/internal/domain/entities"
	"github.com/swasthly/healthassist/internal/domain/repositories"
	"github.com/swasthly/healthassist/internal/infrastructure/clients/postgres"
	apperrors "github.com/swasthly/healthassist/pkg/errors"
)

// MoodAdapter implements the MoodRepository interface
type MoodAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewMoodAdapter creates a new mood adapter
func NewMoodAdapter(client *postgres.Client) repositories.MoodRepository {
	return &MoodAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create stores a new mood entry
func (a *MoodAdapter) Create(ctx context.Context, entry *entities.MoodEntry) error {
	record := goqu.Record{
		"id":          entry.ID,
		"user_id":     entry.UserID,
		"mood":        entry.Mood,
		"intensity":   entry.Intensity,
		"note":        entry.Note,
		"recorded_at": entry.RecordedAt,
	}

	query, args, err := a.db.Insert("mood_entries").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create mood entry", err)
	}

	return nil
}

// ListByUser retrieves a user's mood entries, most recent first
func (a *MoodAdapter) ListByUser(ctx context.Context, userID string, limit int) ([]*entities.MoodEntry, error) {
	ds := a.db.Select(
		"id", "user_id", "mood", "intensity", "note", "recorded_at",
	).From("mood_entries").
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("recorded_at").Desc())

	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list mood entries", err)
	}
	defer rows.Close()

	var entries []*entities.MoodEntry
	for rows.Next() {
		entry := &entities.MoodEntry{}
		var note sql.NullString

		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Mood,
			&entry.Intensity,
			&note,
			&entry.RecordedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan mood entry", err)
		}

		entry.Note = note.String
		entries = append(entries, entry)
	}

	return entries, nil
}
