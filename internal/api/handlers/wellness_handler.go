package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/swasthly/healthassist/internal/application/services"
	"github.com/swasthly/healthassist/internal/domain/entities"
)

// WellnessHandler handles mood tracking HTTP requests
type WellnessHandler struct {
	wellnessService *services.WellnessService
}

// NewWellnessHandler creates a new wellness handler
func NewWellnessHandler(wellnessService *services.WellnessService) *WellnessHandler {
	return &WellnessHandler{wellnessService: wellnessService}
}

// RecordMood handles POST /api/wellness/moods
func (h *WellnessHandler) RecordMood(w http.ResponseWriter, r *http.Request) {
	var entry entities.MoodEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.wellnessService.RecordMood(r.Context(), &entry); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, entry)
}

// GetMoodHistory handles GET /api/wellness/moods
func (h *WellnessHandler) GetMoodHistory(w http.ResponseWriter, r *http.Request) {
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

	entries, err := h.wellnessService.History(r.Context(), userID, limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"entries":     entries,
		"total_count": len(entries),
	})
}

// GetMoodSummary handles GET /api/wellness/moods/summary
func (h *WellnessHandler) GetMoodSummary(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "userId is required")
		return
	}

	summary, err := h.wellnessService.Summary(r.Context(), userID, 0)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}
