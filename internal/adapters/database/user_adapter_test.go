package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swasthly/healthassist/internal/domain/entities"
	apperrors "github.com/swasthly/healthassist/pkg/errors"
)

func TestUserAdapterGetByID(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewUserAdapter(client)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "name", "email", "phone", "date_of_birth", "blood_group",
		"allergies", "emergency_contact", "created_at", "updated_at",
	}).AddRow("user-1", "Asha Rao", "asha@example.com", "+919812345678",
		"1992-06-14", "B+", "{penicillin,dust}", nil, now, now)

	mock.ExpectQuery(`SELECT .+ FROM "user_profiles"`).WillReturnRows(rows)

	profile, err := adapter.GetByID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", profile.Name)
	assert.Equal(t, "B+", profile.BloodGroup)
	assert.Equal(t, []string{"penicillin", "dust"}, profile.Allergies)
	assert.Empty(t, profile.EmergencyContact)
}

func TestUserAdapterGetByIDNotFound(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewUserAdapter(client)

	mock.ExpectQuery(`SELECT .+ FROM "user_profiles"`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "email", "phone", "date_of_birth", "blood_group",
			"allergies", "emergency_contact", "created_at", "updated_at",
		}))

	_, err := adapter.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestUserAdapterUpdate(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewUserAdapter(client)

	profile := &entities.UserProfile{
		ID:         "user-1",
		Name:       "Asha Rao",
		Email:      "asha@example.com",
		BloodGroup: "B+",
		Allergies:  []string{"penicillin"},
	}

	mock.ExpectExec(`UPDATE "user_profiles"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := adapter.Update(context.Background(), profile)
	require.NoError(t, err)
	assert.False(t, profile.UpdatedAt.IsZero())
}

func TestUserAdapterUpdateNotFound(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewUserAdapter(client)

	mock.ExpectExec(`UPDATE "user_profiles"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := adapter.Update(context.Background(), &entities.UserProfile{ID: "missing"})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}
