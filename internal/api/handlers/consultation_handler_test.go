package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swasthly/healthassist/internal/api/handlers"
	"github.com/swasthly/healthassist/internal/application/services"
	"github.com/swasthly/healthassist/internal/domain/entities"
	apperrors "github.com/swasthly/healthassist/pkg/errors"
)

type fakeConsultationRepo struct {
	byID     map[string]*entities.Consultation
	statuses map[string]entities.ConsultationStatus
}

func newFakeConsultationRepo() *fakeConsultationRepo {
	return &fakeConsultationRepo{
		byID:     make(map[string]*entities.Consultation),
		statuses: make(map[string]entities.ConsultationStatus),
	}
}

func (r *fakeConsultationRepo) Create(_ context.Context, c *entities.Consultation) error {
	r.byID[c.ID] = c
	return nil
}

func (r *fakeConsultationRepo) GetByID(_ context.Context, id string) (*entities.Consultation, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("consultation not found")
	}
	if status, ok := r.statuses[id]; ok {
		copied := *c
		copied.Status = status
		return &copied, nil
	}
	return c, nil
}

func (r *fakeConsultationRepo) ListByUser(_ context.Context, userID string, _ int) ([]*entities.Consultation, error) {
	var out []*entities.Consultation
	for _, c := range r.byID {
		if c.UserID != nil && *c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeConsultationRepo) UpdateStatus(_ context.Context, id string, status entities.ConsultationStatus) error {
	if _, ok := r.byID[id]; !ok {
		return apperrors.NewNotFoundError("consultation not found")
	}
	r.statuses[id] = status
	return nil
}

type fakeScheduler struct {
	err error
}

func (s *fakeScheduler) GetAvailableSlots(_ context.Context, doctorID string, from, to time.Time) ([]entities.AvailabilitySlot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []entities.AvailabilitySlot{
		{DoctorID: doctorID, StartAt: from, EndAt: from.Add(30 * time.Minute)},
	}, nil
}

func (s *fakeScheduler) Schedule(_ context.Context, _ *entities.Consultation) (string, string, error) {
	if s.err != nil {
		return "", "", s.err
	}
	return "ext-1", "https://meet.example/ext-1", nil
}

func newConsultationHandler(repo *fakeConsultationRepo) *handlers.ConsultationHandler {
	service := services.NewConsultationService(repo, &fakeScheduler{}, nil)
	return handlers.NewConsultationHandler(service)
}

func TestConsultationHandler_Book(t *testing.T) {
	t.Run("successfully books consultation", func(t *testing.T) {
		repo := newFakeConsultationRepo()
		handler := newConsultationHandler(repo)

		payload := map[string]interface{}{
			"doctor_id":     "doc-1",
			"doctor_name":   "Dr. Priya Sharma",
			"scheduled_at":  time.Now().Add(24 * time.Hour).Format(time.RFC3339),
			"patient_name":  "Asha Rao",
			"patient_email": "asha@example.com",
		}
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest("POST", "/api/consultations", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Book(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var created entities.Consultation
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, entities.ConsultationStatusPending, created.Status)
		require.NotNil(t, created.MeetingLink)
		assert.Equal(t, "https://meet.example/ext-1", *created.MeetingLink)
		assert.Len(t, repo.byID, 1)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		handler := newConsultationHandler(newFakeConsultationRepo())

		payload := map[string]interface{}{
			"doctor_id":     "doc-1",
			"scheduled_at":  time.Now().Add(24 * time.Hour).Format(time.RFC3339),
			"patient_name":  "Asha Rao",
			"patient_email": "not-an-email",
		}
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest("POST", "/api/consultations", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Book(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "patient_email")
	})

	t.Run("rejects missing doctor id", func(t *testing.T) {
		handler := newConsultationHandler(newFakeConsultationRepo())

		payload := map[string]interface{}{
			"scheduled_at":  time.Now().Add(24 * time.Hour).Format(time.RFC3339),
			"patient_name":  "Asha Rao",
			"patient_email": "asha@example.com",
		}
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest("POST", "/api/consultations", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Book(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "doctor_id")
	})

	t.Run("rejects past booking time", func(t *testing.T) {
		handler := newConsultationHandler(newFakeConsultationRepo())

		payload := map[string]interface{}{
			"doctor_id":     "doc-1",
			"scheduled_at":  time.Now().Add(-time.Hour).Format(time.RFC3339),
			"patient_name":  "Asha Rao",
			"patient_email": "asha@example.com",
		}
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest("POST", "/api/consultations", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Book(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns bad request for invalid payload", func(t *testing.T) {
		handler := newConsultationHandler(newFakeConsultationRepo())

		req := httptest.NewRequest("POST", "/api/consultations", bytes.NewBufferString("invalid-json"))
		w := httptest.NewRecorder()

		handler.Book(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestConsultationHandler_Cancel(t *testing.T) {
	t.Run("cancels an existing consultation", func(t *testing.T) {
		repo := newFakeConsultationRepo()
		repo.byID["c-1"] = &entities.Consultation{
			ID:     "c-1",
			Status: entities.ConsultationStatusPending,
		}
		handler := newConsultationHandler(repo)

		req := httptest.NewRequest("DELETE", "/api/consultations/c-1", nil)
		req.SetPathValue("id", "c-1")
		w := httptest.NewRecorder()

		handler.Cancel(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, entities.ConsultationStatusCancelled, repo.statuses["c-1"])
	})

	t.Run("returns 404 for unknown consultation", func(t *testing.T) {
		handler := newConsultationHandler(newFakeConsultationRepo())

		req := httptest.NewRequest("DELETE", "/api/consultations/nope", nil)
		req.SetPathValue("id", "nope")
		w := httptest.NewRecorder()

		handler.Cancel(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestConsultationHandler_GetAvailability(t *testing.T) {
	t.Run("returns slots for a valid window", func(t *testing.T) {
		handler := newConsultationHandler(newFakeConsultationRepo())

		req := httptest.NewRequest("GET", "/api/consultations/availability?doctorId=doc-1&from=2026-09-01T09:00:00Z&to=2026-09-01T12:00:00Z", nil)
		w := httptest.NewRecorder()

		handler.GetAvailability(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "doc-1", body["doctor_id"])
		assert.NotEmpty(t, body["slots"])
	})

	t.Run("rejects malformed timestamps", func(t *testing.T) {
		handler := newConsultationHandler(newFakeConsultationRepo())

		req := httptest.NewRequest("GET", "/api/consultations/availability?doctorId=doc-1&from=tomorrow&to=2026-09-01T12:00:00Z", nil)
		w := httptest.NewRecorder()

		handler.GetAvailability(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("requires doctorId", func(t *testing.T) {
		handler := newConsultationHandler(newFakeConsultationRepo())

		req := httptest.NewRequest("GET", "/api/consultations/availability?from=2026-09-01T09:00:00Z&to=2026-09-01T12:00:00Z", nil)
		w := httptest.NewRecorder()

		handler.GetAvailability(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
