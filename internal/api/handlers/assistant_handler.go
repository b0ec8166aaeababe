package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/swasthly/healthassist/internal/application/services"
	"github.com/swasthly/healthassist/internal/domain/entities"
	apperrors "github.com/swasthly/healthassist/pkg/errors"
)

// chatFallbackMessage is returned in place of a model reply when the AI
// service is unreachable, so the chat keeps working in degraded form.
const chatFallbackMessage = `I apologize, but I'm having trouble connecting to the AI service right now.

In the meantime, here are some general recommendations:

• Monitor your symptoms closely
• Stay hydrated and get plenty of rest
• Consider consulting a healthcare provider
• Seek immediate care for severe symptoms

Please try again in a moment.`

// AssistantHandler handles AI assistant HTTP requests
type AssistantHandler struct {
	assistantService *services.AssistantService
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(assistantService *services.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantService: assistantService}
}

// Chat handles POST /api/assistant/chat
func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string                 `json:"message"`
		History []entities.ChatMessage `json:"history"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondWithError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply, err := h.assistantService.GenerateChatResponse(r.Context(), req.Message, req.History)
	if err != nil {
		// Missing configuration is an operator problem and surfaces as
		// such; transient model failures degrade to a canned reply.
		if apperrors.IsType(err, apperrors.ErrorTypeConfiguration) {
			respondWithAppError(w, err)
			return
		}
		log.Warn().Err(err).Msg("Chat generation failed, serving fallback reply")
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"reply":    chatFallbackMessage,
			"fallback": true,
		})
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reply": reply,
	})
}

// AnalyzeSymptoms handles POST /api/assistant/symptoms
func (h *AssistantHandler) AnalyzeSymptoms(w http.ResponseWriter, r *http.Request) {
	var req entities.SymptomAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Symptoms) == "" {
		respondWithError(w, http.StatusBadRequest, "symptoms is required")
		return
	}

	analysis, err := h.assistantService.AnalyzeSymptoms(r.Context(), &req)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, analysis)
}

// WellnessSupport handles POST /api/assistant/wellness
func (h *AssistantHandler) WellnessSupport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Concern string `json:"concern"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Concern) == "" {
		respondWithError(w, http.StatusBadRequest, "concern is required")
		return
	}

	reply, err := h.assistantService.GenerateWellnessResponse(r.Context(), req.Concern)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reply": reply,
	})
}
