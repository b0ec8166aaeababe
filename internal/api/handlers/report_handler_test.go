package handlers_test

import (
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

type fakeReportRepo struct {
	reports []*entities.HealthReport
}

func (r *fakeReportRepo) ListByUser(_ context.Context, userID string) ([]*entities.HealthReport, error) {
	var out []*entities.HealthReport
	for _, report := range r.reports {
		if report.UserID == userID {
			out = append(out, report)
		}
	}
	return out, nil
}

func (r *fakeReportRepo) GetByID(_ context.Context, id string) (*entities.HealthReport, error) {
	for _, report := range r.reports {
		if report.ID == id {
			return report, nil
		}
	}
	return nil, apperrors.NewNotFoundError("health report not found")
}

func newReportHandler(repo *fakeReportRepo) *handlers.ReportHandler {
	return handlers.NewReportHandler(services.NewReportService(repo))
}

func TestReportHandler_ListReports(t *testing.T) {
	repo := &fakeReportRepo{reports: []*entities.HealthReport{
		{ID: "r-1", UserID: "user-1", Title: "Blood Panel", Category: "lab", ReportDate: time.Now()},
		{ID: "r-2", UserID: "user-2", Title: "Chest X-Ray", Category: "imaging", ReportDate: time.Now()},
	}}
	handler := newReportHandler(repo)

	t.Run("returns the user's reports", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/reports?userId=user-1", nil)
		w := httptest.NewRecorder()

		handler.ListReports(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.EqualValues(t, 1, body["total_count"])
	})

	t.Run("requires userId", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/reports", nil)
		w := httptest.NewRecorder()

		handler.ListReports(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReportHandler_GetReport(t *testing.T) {
	repo := &fakeReportRepo{reports: []*entities.HealthReport{
		{ID: "r-1", UserID: "user-1", Title: "Blood Panel", Category: "lab", ReportDate: time.Now()},
	}}
	handler := newReportHandler(repo)

	t.Run("returns report by id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/reports/r-1", nil)
		req.SetPathValue("id", "r-1")
		w := httptest.NewRecorder()

		handler.GetReport(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var report entities.HealthReport
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
		assert.Equal(t, "Blood Panel", report.Title)
	})

	t.Run("returns 404 for unknown report", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/reports/nope", nil)
		req.SetPathValue("id", "nope")
		w := httptest.NewRecorder()

		handler.GetReport(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
