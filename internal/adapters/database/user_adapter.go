package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/swasthly/healthassist/internal/domain/entities"
	"github.com/swasthly/healthassist/internal/domain/repositories"
	"github.com/swasthly/healthassist/internal/infrastructure/clients/postgres"
	apperrors "github.com/swasthly/healthassist/pkg/errors"
)

// UserAdapter implements the UserRepository interface
type UserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserAdapter creates a new user adapter
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves a user profile by ID
func (a *UserAdapter) GetByID(ctx context.Context, id string) (*entities.UserProfile, error) {
	query, args, err := a.db.Select(
		"id", "name", "email", "phone", "date_of_birth", "blood_group",
		"allergies", "emergency_contact", "created_at", "updated_at",
	).From("user_profiles").
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	profile := &entities.UserProfile{}
	var phone, dateOfBirth, bloodGroup, emergencyContact sql.NullString
	var allergies pq.StringArray

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&profile.ID,
		&profile.Name,
		&profile.Email,
		&phone,
		&dateOfBirth,
		&bloodGroup,
		&allergies,
		&emergencyContact,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user profile with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user profile", err)
	}

	profile.Phone = phone.String
	profile.DateOfBirth = dateOfBirth.String
	profile.BloodGroup = bloodGroup.String
	profile.EmergencyContact = emergencyContact.String
	profile.Allergies = []string(allergies)

	return profile, nil
}

// Update stores changes to an existing profile
func (a *UserAdapter) Update(ctx context.Context, profile *entities.UserProfile) error {
	profile.UpdatedAt = time.Now()

	record := goqu.Record{
		"name":              profile.Name,
		"email":             profile.Email,
		"phone":             profile.Phone,
		"date_of_birth":     profile.DateOfBirth,
		"blood_group":       profile.BloodGroup,
		"allergies":         pq.Array(profile.Allergies),
		"emergency_contact": profile.EmergencyContact,
		"updated_at":        profile.UpdatedAt,
	}

	query, args, err := a.db.Update("user_profiles").
		Set(record).
		Where(goqu.Ex{"id": profile.ID}).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update user profile", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("user profile with id %s not found", profile.ID))
	}

	return nil
}
