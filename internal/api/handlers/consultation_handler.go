package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/swasthly/healthassist/internal/application/services"
	"github.com/swasthly/healthassist/internal/domain/entities"
)

// ConsultationHandler handles consultation booking HTTP requests
type ConsultationHandler struct {
	consultationService *services.ConsultationService
	validate            *validator.Validate
}

// NewConsultationHandler creates a new consultation handler
func NewConsultationHandler(consultationService *services.ConsultationService) *ConsultationHandler {
	return &ConsultationHandler{
		consultationService: consultationService,
		validate:            validator.New(validator.WithRequiredStructEnabled()),
	}
}

type bookConsultationRequest struct {
	UserID       string    `json:"user_id"`
	DoctorID     string    `json:"doctor_id" validate:"required"`
	DoctorName   string    `json:"doctor_name"`
	Specialty    string    `json:"specialty"`
	ScheduledAt  time.Time `json:"scheduled_at" validate:"required"`
	PatientName  string    `json:"patient_name" validate:"required"`
	PatientEmail string    `json:"patient_email" validate:"required,email"`
	PatientPhone string    `json:"patient_phone" validate:"omitempty,e164"`
	Reason       string    `json:"reason"`
}

// Book handles POST /api/consultations
func (h *ConsultationHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req bookConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	consultation := &entities.Consultation{
		DoctorID:     req.DoctorID,
		DoctorName:   req.DoctorName,
		Specialty:    req.Specialty,
		ScheduledAt:  req.ScheduledAt,
		PatientName:  req.PatientName,
		PatientEmail: req.PatientEmail,
		PatientPhone: req.PatientPhone,
		Reason:       req.Reason,
	}
	if req.UserID != "" {
		consultation.UserID = &req.UserID
	}

	if err := h.consultationService.Book(r.Context(), consultation); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, consultation)
}

// GetConsultation handles GET /api/consultations/{id}
func (h *ConsultationHandler) GetConsultation(w http.ResponseWriter, r *http.Request) {
	consultation, err := h.consultationService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, consultation)
}

// ListConsultations handles GET /api/consultations
func (h *ConsultationHandler) ListConsultations(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "userId is required")
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		limit = parsed
	}

	consultations, err := h.consultationService.ListByUser(r.Context(), userID, limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"consultations": consultations,
		"total_count":   len(consultations),
	})
}

// Cancel handles DELETE /api/consultations/{id}
func (h *ConsultationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.consultationService.Cancel(r.Context(), r.PathValue("id")); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status": string(entities.ConsultationStatusCancelled),
	})
}

// GetAvailability handles GET /api/consultations/availability
func (h *ConsultationHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	doctorID := query.Get("doctorId")
	if doctorID == "" {
		respondWithError(w, http.StatusBadRequest, "doctorId is required")
		return
	}

	from, err := time.Parse(time.RFC3339, query.Get("from"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid from parameter, expected RFC3339 timestamp")
		return
	}
	to, err := time.Parse(time.RFC3339, query.Get("to"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid to parameter, expected RFC3339 timestamp")
		return
	}

	slots, err := h.consultationService.GetAvailableSlots(r.Context(), doctorID, from, to)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctor_id": doctorID,
		"slots":     slots,
	})
}

// validationMessage flattens validator errors into a single readable message.
func validationMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return "invalid request"
	}

	parts := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		switch fieldErr.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", jsonFieldName(fieldErr.Field())))
		case "email":
			parts = append(parts, fmt.Sprintf("%s must be a valid email address", jsonFieldName(fieldErr.Field())))
		case "e164":
			parts = append(parts, fmt.Sprintf("%s must be an E.164 phone number", jsonFieldName(fieldErr.Field())))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", jsonFieldName(fieldErr.Field())))
		}
	}
	if len(parts) == 0 {
		return "invalid request"
	}
	return strings.Join(parts, "; ")
}

// jsonFieldName converts a Go struct field name to its snake_case JSON form.
func jsonFieldName(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && field[i-1] >= 'a' && field[i-1] <= 'z' {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
