package entities

import "time"

// ConsultationStatus is the lifecycle state of a video consultation booking.
type ConsultationStatus string

const (
	ConsultationStatusPending   ConsultationStatus = "pending"
	ConsultationStatusConfirmed ConsultationStatus = "confirmed"
	ConsultationStatusCancelled ConsultationStatus = "cancelled"
)

// Consultation represents a booked video consultation.
type Consultation struct {
	ID           string             `json:"id"`
	UserID       *string            `json:"user_id,omitempty"`
	DoctorID     string             `json:"doctor_id"`
	DoctorName   string             `json:"doctor_name,omitempty"`
	Specialty    string             `json:"specialty,omitempty"`
	ScheduledAt  time.Time          `json:"scheduled_at"`
	Status       ConsultationStatus `json:"status"`
	PatientName  string             `json:"patient_name"`
	PatientEmail string             `json:"patient_email"`
	PatientPhone string             `json:"patient_phone,omitempty"`
	Reason       string             `json:"reason,omitempty"`
	MeetingLink  *string            `json:"meeting_link,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// AvailabilitySlot is a bookable time window for a doctor.
type AvailabilitySlot struct {
	DoctorID string    `json:"doctor_id"`
	StartAt  time.Time `json:"start_at"`
	EndAt    time.Time `json:"end_at"`
}

// ConsultationEventType identifies consultation lifecycle events.
type ConsultationEventType string

const (
	ConsultationEventBooked    ConsultationEventType = "consultation.booked"
	ConsultationEventCancelled ConsultationEventType = "consultation.cancelled"
)

// ConsultationEvent is published on the event bus when a booking changes.
type ConsultationEvent struct {
	ID             string                `json:"id"`
	Type           ConsultationEventType `json:"type"`
	ConsultationID string                `json:"consultation_id"`
	DoctorID       string                `json:"doctor_id"`
	ScheduledAt    time.Time             `json:"scheduled_at"`
	OccurredAt     time.Time             `json:"occurred_at"`
}
