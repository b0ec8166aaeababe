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

// ConsultationAdapter implements the ConsultationRepository interface
type ConsultationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewConsultationAdapter creates a new consultation adapter
func NewConsultationAdapter(client *postgres.Client) repositories.ConsultationRepository {
	return &ConsultationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create stores a new consultation
func (a *ConsultationAdapter) Create(ctx context.Context, consultation *entities.Consultation) error {
	record := goqu.Record{
		"id":            consultation.ID,
		"user_id":       consultation.UserID,
		"doctor_id":     consultation.DoctorID,
		"doctor_name":   consultation.DoctorName,
		"specialty":     consultation.Specialty,
		"scheduled_at":  consultation.ScheduledAt,
		"status":        consultation.Status,
		"patient_name":  consultation.PatientName,
		"patient_email": consultation.PatientEmail,
		"patient_phone": consultation.PatientPhone,
		"reason":        consultation.Reason,
		"meeting_link":  consultation.MeetingLink,
		"created_at":    consultation.CreatedAt,
		"updated_at":    consultation.UpdatedAt,
	}

	query, args, err := a.db.Insert("consultations").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create consultation", err)
	}

	return nil
}

// GetByID retrieves a consultation by ID
func (a *ConsultationAdapter) GetByID(ctx context.Context, id string) (*entities.Consultation, error) {
	query, args, err := a.db.Select(
		"id", "user_id", "doctor_id", "doctor_name", "specialty",
		"scheduled_at", "status", "patient_name", "patient_email",
		"patient_phone", "reason", "meeting_link",
		"created_at", "updated_at",
	).From("consultations").
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	consultation, err := scanConsultation(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("consultation with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get consultation", err)
	}

	return consultation, nil
}

// ListByUser retrieves a user's consultations, most recent first
func (a *ConsultationAdapter) ListByUser(ctx context.Context, userID string, limit int) ([]*entities.Consultation, error) {
	ds := a.db.Select(
		"id", "user_id", "doctor_id", "doctor_name", "specialty",
		"scheduled_at", "status", "patient_name", "patient_email",
		"patient_phone", "reason", "meeting_link",
		"created_at", "updated_at",
	).From("consultations").
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("scheduled_at").Desc())

	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list consultations", err)
	}
	defer rows.Close()

	var consultations []*entities.Consultation
	for rows.Next() {
		consultation, err := scanConsultation(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan consultation", err)
		}
		consultations = append(consultations, consultation)
	}

	return consultations, nil
}

// UpdateStatus transitions a consultation's lifecycle state
func (a *ConsultationAdapter) UpdateStatus(ctx context.Context, id string, status entities.ConsultationStatus) error {
	query, args, err := a.db.Update("consultations").
		Set(goqu.Record{
			"status":     status,
			"updated_at": goqu.L("NOW()"),
		}).
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update consultation status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("consultation with id %s not found", id))
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConsultation(row rowScanner) (*entities.Consultation, error) {
	consultation := &entities.Consultation{}
	var userID sql.NullString
	var doctorName, specialty, patientPhone, reason, meetingLink sql.NullString

	err := row.Scan(
		&consultation.ID,
		&userID,
		&consultation.DoctorID,
		&doctorName,
		&specialty,
		&consultation.ScheduledAt,
		&consultation.Status,
		&consultation.PatientName,
		&consultation.PatientEmail,
		&patientPhone,
		&reason,
		&meetingLink,
		&consultation.CreatedAt,
		&consultation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if userID.Valid {
		consultation.UserID = &userID.String
	}
	if meetingLink.Valid {
		consultation.MeetingLink = &meetingLink.String
	}
	consultation.DoctorName = doctorName.String
	consultation.Specialty = specialty.String
	consultation.PatientPhone = patientPhone.String
	consultation.Reason = reason.String

	return consultation, nil
}
