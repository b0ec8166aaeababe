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
)

type fakeMoodRepo struct {
	entries []*entities.MoodEntry
}

func (r *fakeMoodRepo) Create(_ context.Context, entry *entities.MoodEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeMoodRepo) ListByUser(_ context.Context, userID string, _ int) ([]*entities.MoodEntry, error) {
	var out []*entities.MoodEntry
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func newWellnessHandler(repo *fakeMoodRepo) *handlers.WellnessHandler {
	return handlers.NewWellnessHandler(services.NewWellnessService(repo))
}

func TestWellnessHandler_RecordMood(t *testing.T) {
	t.Run("records a mood entry", func(t *testing.T) {
		repo := &fakeMoodRepo{}
		handler := newWellnessHandler(repo)

		w := httptest.NewRecorder()
		handler.RecordMood(w, postJSON("/api/wellness/moods", map[string]interface{}{
			"user_id":   "user-1",
			"mood":      "calm",
			"intensity": 3,
			"note":      "slept well",
		}))

		require.Equal(t, http.StatusCreated, w.Code)
		require.Len(t, repo.entries, 1)
		assert.NotEmpty(t, repo.entries[0].ID)
		assert.False(t, repo.entries[0].RecordedAt.IsZero())
	})

	t.Run("rejects out of range intensity", func(t *testing.T) {
		handler := newWellnessHandler(&fakeMoodRepo{})

		w := httptest.NewRecorder()
		handler.RecordMood(w, postJSON("/api/wellness/moods", map[string]interface{}{
			"user_id":   "user-1",
			"mood":      "calm",
			"intensity": 9,
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestWellnessHandler_GetMoodHistory(t *testing.T) {
	t.Run("returns the user's entries", func(t *testing.T) {
		repo := &fakeMoodRepo{entries: []*entities.MoodEntry{
			{ID: "m-1", UserID: "user-1", Mood: "calm", Intensity: 3, RecordedAt: time.Now()},
			{ID: "m-2", UserID: "user-2", Mood: "anxious", Intensity: 4, RecordedAt: time.Now()},
		}}
		handler := newWellnessHandler(repo)

		req := httptest.NewRequest("GET", "/api/wellness/moods?userId=user-1", nil)
		w := httptest.NewRecorder()

		handler.GetMoodHistory(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.EqualValues(t, 1, body["total_count"])
	})

	t.Run("requires userId", func(t *testing.T) {
		handler := newWellnessHandler(&fakeMoodRepo{})

		req := httptest.NewRequest("GET", "/api/wellness/moods", nil)
		w := httptest.NewRecorder()

		handler.GetMoodHistory(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestWellnessHandler_GetMoodSummary(t *testing.T) {
	repo := &fakeMoodRepo{entries: []*entities.MoodEntry{
		{ID: "m-1", UserID: "user-1", Mood: "calm", Intensity: 2, RecordedAt: time.Now()},
		{ID: "m-2", UserID: "user-1", Mood: "calm", Intensity: 4, RecordedAt: time.Now()},
	}}
	handler := newWellnessHandler(repo)

	req := httptest.NewRequest("GET", "/api/wellness/moods/summary?userId=user-1", nil)
	w := httptest.NewRecorder()

	handler.GetMoodSummary(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var summary entities.MoodSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.TotalEntries)
	assert.Equal(t, 2, summary.MoodCounts["calm"])
	assert.InDelta(t, 3.0, summary.AvgIntensity, 0.001)
}
