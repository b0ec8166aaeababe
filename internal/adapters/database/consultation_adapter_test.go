package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swasthly/healthassist/internal/domain/entities"
	"github.com/swasthly/healthassist/internal/infrastructure/clients/postgres"
	apperrors "github.com/swasthly/healthassist/pkg/errors"
)

func setupMockDB(t *testing.T) (*postgres.Client, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })
	return postgres.NewClientFromDB(mockDB), mock
}

var consultationColumns = []string{
	"id", "user_id", "doctor_id", "doctor_name", "specialty",
	"scheduled_at", "status", "patient_name", "patient_email",
	"patient_phone", "reason", "meeting_link",
	"created_at", "updated_at",
}

func TestConsultationAdapterCreate(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewConsultationAdapter(client)

	userID := "user-1"
	now := time.Now()
	consultation := &entities.Consultation{
		ID:           "c-1",
		UserID:       &userID,
		DoctorID:     "doc-1",
		DoctorName:   "Dr. Mehta",
		Specialty:    "General Medicine",
		ScheduledAt:  now.Add(24 * time.Hour),
		Status:       entities.ConsultationStatusPending,
		PatientName:  "Asha Rao",
		PatientEmail: "asha@example.com",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	mock.ExpectExec(`INSERT INTO "consultations"`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := adapter.Create(context.Background(), consultation)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsultationAdapterGetByID(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewConsultationAdapter(client)

	now := time.Now()
	rows := sqlmock.NewRows(consultationColumns).
		AddRow("c-1", "user-1", "doc-1", "Dr. Mehta", "General Medicine",
			now.Add(24*time.Hour), "pending", "Asha Rao", "asha@example.com",
			nil, "fever", "https://meet.healthassist.example/mock-1",
			now, now)

	mock.ExpectQuery(`SELECT .+ FROM "consultations"`).WillReturnRows(rows)

	consultation, err := adapter.GetByID(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, "c-1", consultation.ID)
	require.NotNil(t, consultation.UserID)
	assert.Equal(t, "user-1", *consultation.UserID)
	assert.Equal(t, entities.ConsultationStatusPending, consultation.Status)
	assert.Empty(t, consultation.PatientPhone)
	require.NotNil(t, consultation.MeetingLink)
	assert.Contains(t, *consultation.MeetingLink, "mock-1")
}

func TestConsultationAdapterGetByIDNotFound(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewConsultationAdapter(client)

	mock.ExpectQuery(`SELECT .+ FROM "consultations"`).
		WillReturnRows(sqlmock.NewRows(consultationColumns))

	_, err := adapter.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestConsultationAdapterListByUser(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewConsultationAdapter(client)

	now := time.Now()
	rows := sqlmock.NewRows(consultationColumns).
		AddRow("c-2", "user-1", "doc-2", nil, nil,
			now.Add(48*time.Hour), "confirmed", "Asha Rao", "asha@example.com",
			"+919812345678", nil, nil, now, now).
		AddRow("c-1", "user-1", "doc-1", "Dr. Mehta", "General Medicine",
			now.Add(24*time.Hour), "pending", "Asha Rao", "asha@example.com",
			nil, nil, nil, now, now)

	mock.ExpectQuery(`SELECT .+ FROM "consultations"`).WillReturnRows(rows)

	consultations, err := adapter.ListByUser(context.Background(), "user-1", 10)
	require.NoError(t, err)
	require.Len(t, consultations, 2)
	assert.Equal(t, "c-2", consultations[0].ID)
	assert.Nil(t, consultations[0].MeetingLink)
	assert.Equal(t, "+919812345678", consultations[0].PatientPhone)
}

func TestConsultationAdapterUpdateStatus(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewConsultationAdapter(client)

	mock.ExpectExec(`UPDATE "consultations"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := adapter.UpdateStatus(context.Background(), "c-1", entities.ConsultationStatusCancelled)
	require.NoError(t, err)
}

func TestConsultationAdapterUpdateStatusNotFound(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewConsultationAdapter(client)

	mock.ExpectExec(`UPDATE "consultations"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := adapter.UpdateStatus(context.Background(), "missing", entities.ConsultationStatusCancelled)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}
