package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/swasthly/healthassist/internal/domain/entities"
	"github.com/swasthly/healthassist/internal/domain/providers"
	"github.com/swasthly/healthassist/internal/domain/repositories"
	apperrors "github.com/swasthly/healthassist/pkg/errors"
)

// ConsultationEventChannel is the pub/sub channel for booking lifecycle
// events.
const ConsultationEventChannel = "consultations"

// ConsultationService handles video consultation booking logic.
type ConsultationService struct {
	repo     repositories.ConsultationRepository
	provider providers.SchedulingProvider
	eventBus providers.EventBus
	now      func() time.Time
}

// NewConsultationService creates a new consultation service. eventBus may be
// nil when no bus is configured.
func NewConsultationService(
	repo repositories.ConsultationRepository,
	provider providers.SchedulingProvider,
	eventBus providers.EventBus,
) *ConsultationService {
	return &ConsultationService{
		repo:     repo,
		provider: provider,
		eventBus: eventBus,
		now:      time.Now,
	}
}

// Book schedules a consultation with the provider and persists it. The
// booking stays pending until the scheduling backend confirms; the returned
// consultation carries the meeting link when the provider issued one.
func (s *ConsultationService) Book(ctx context.Context, consultation *entities.Consultation) error {
	if consultation.ScheduledAt.Before(s.now()) {
		return apperrors.NewValidationError("cannot book a consultation in the past")
	}

	_, meetingLink, err := s.provider.Schedule(ctx, consultation)
	if err != nil {
		return apperrors.NewExternalError("failed to book with scheduling provider", err)
	}

	if consultation.ID == "" {
		consultation.ID = uuid.New().String()
	}
	consultation.Status = entities.ConsultationStatusPending
	if meetingLink != "" {
		consultation.MeetingLink = &meetingLink
	}
	consultation.CreatedAt = s.now()
	consultation.UpdatedAt = consultation.CreatedAt

	if err := s.repo.Create(ctx, consultation); err != nil {
		return err
	}

	s.publishEvent(ctx, entities.ConsultationEventBooked, consultation)
	return nil
}

// GetByID returns one consultation.
func (s *ConsultationService) GetByID(ctx context.Context, id string) (*entities.Consultation, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByUser returns a user's consultations, most recent first.
func (s *ConsultationService) ListByUser(ctx context.Context, userID string, limit int) ([]*entities.Consultation, error) {
	return s.repo.ListByUser(ctx, userID, limit)
}

// Cancel transitions a consultation to cancelled and announces it.
func (s *ConsultationService) Cancel(ctx context.Context, id string) error {
	consultation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if consultation.Status == entities.ConsultationStatusCancelled {
		return apperrors.NewConflictError("consultation is already cancelled")
	}

	if err := s.repo.UpdateStatus(ctx, id, entities.ConsultationStatusCancelled); err != nil {
		return err
	}

	consultation.Status = entities.ConsultationStatusCancelled
	s.publishEvent(ctx, entities.ConsultationEventCancelled, consultation)
	return nil
}

// GetAvailableSlots returns bookable windows for a doctor.
func (s *ConsultationService) GetAvailableSlots(ctx context.Context, doctorID string, from, to time.Time) ([]entities.AvailabilitySlot, error) {
	if doctorID == "" {
		return nil, apperrors.NewValidationError("doctor id is required")
	}
	if !to.After(from) {
		return nil, apperrors.NewValidationError("availability window must end after it starts")
	}

	slots, err := s.provider.GetAvailableSlots(ctx, doctorID, from, to)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to fetch availability", err)
	}
	return slots, nil
}

// publishEvent announces a lifecycle change. Event delivery is best-effort;
// a bus failure never fails the booking.
func (s *ConsultationService) publishEvent(ctx context.Context, eventType entities.ConsultationEventType, consultation *entities.Consultation) {
	if s.eventBus == nil {
		return
	}

	event := &entities.ConsultationEvent{
		ID:             uuid.New().String(),
		Type:           eventType,
		ConsultationID: consultation.ID,
		DoctorID:       consultation.DoctorID,
		ScheduledAt:    consultation.ScheduledAt,
		OccurredAt:     s.now(),
	}

	if err := s.eventBus.Publish(ctx, ConsultationEventChannel, event); err != nil {
		log.Warn().Err(err).Str("consultation_id", consultation.ID).Msg("Failed to publish consultation event")
	}
}
