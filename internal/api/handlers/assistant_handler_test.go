package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swasthly/healthassist/internal/api/handlers"
	"github.com/swasthly/healthassist/internal/application/services"
)

type fakeGenerator struct {
	text          string
	textErr       error
	structured    json.RawMessage
	structuredErr error
}

func (g *fakeGenerator) GenerateText(_ context.Context, _ string) (string, error) {
	return g.text, g.textErr
}

func (g *fakeGenerator) GenerateStructured(_ context.Context, _ string, _ json.RawMessage) (json.RawMessage, error) {
	return g.structured, g.structuredErr
}

func postJSON(path string, payload interface{}) *http.Request {
	body, _ := json.Marshal(payload)
	return httptest.NewRequest("POST", path, bytes.NewBuffer(body))
}

func TestAssistantHandler_Chat(t *testing.T) {
	t.Run("returns model reply", func(t *testing.T) {
		service := services.NewAssistantService(&fakeGenerator{text: "Drink plenty of fluids and rest."})
		handler := handlers.NewAssistantHandler(service)

		w := httptest.NewRecorder()
		handler.Chat(w, postJSON("/api/assistant/chat", map[string]interface{}{
			"message": "I have a sore throat",
		}))

		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Drink plenty of fluids and rest.", body["reply"])
		assert.Nil(t, body["fallback"])
	})

	t.Run("serves fallback reply when the model is unavailable", func(t *testing.T) {
		service := services.NewAssistantService(&fakeGenerator{textErr: errors.New("upstream timeout")})
		handler := handlers.NewAssistantHandler(service)

		w := httptest.NewRecorder()
		handler.Chat(w, postJSON("/api/assistant/chat", map[string]interface{}{
			"message": "I have a sore throat",
		}))

		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, true, body["fallback"])
		assert.Contains(t, body["reply"], "trouble connecting to the AI service")
	})

	t.Run("returns 503 when the assistant is not configured", func(t *testing.T) {
		service := services.NewAssistantService(nil)
		handler := handlers.NewAssistantHandler(service)

		w := httptest.NewRecorder()
		handler.Chat(w, postJSON("/api/assistant/chat", map[string]interface{}{
			"message": "hello",
		}))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("requires a message", func(t *testing.T) {
		service := services.NewAssistantService(&fakeGenerator{text: "hi"})
		handler := handlers.NewAssistantHandler(service)

		w := httptest.NewRecorder()
		handler.Chat(w, postJSON("/api/assistant/chat", map[string]interface{}{
			"message": "   ",
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAssistantHandler_AnalyzeSymptoms(t *testing.T) {
	t.Run("returns structured analysis", func(t *testing.T) {
		structured, _ := json.Marshal(map[string]interface{}{
			"analysis":          "Likely a viral infection.",
			"recommendations":   []string{"Rest"},
			"urgency_level":     "low",
			"suggested_actions": []string{"Monitor symptoms"},
		})
		service := services.NewAssistantService(&fakeGenerator{structured: structured})
		handler := handlers.NewAssistantHandler(service)

		w := httptest.NewRecorder()
		handler.AnalyzeSymptoms(w, postJSON("/api/assistant/symptoms", map[string]interface{}{
			"symptoms": "fever and cough",
			"duration": "2 days",
		}))

		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "low", body["urgency_level"])
		assert.Equal(t, "Likely a viral infection.", body["analysis"])
	})

	t.Run("requires symptoms", func(t *testing.T) {
		service := services.NewAssistantService(&fakeGenerator{})
		handler := handlers.NewAssistantHandler(service)

		w := httptest.NewRecorder()
		handler.AnalyzeSymptoms(w, postJSON("/api/assistant/symptoms", map[string]interface{}{
			"duration": "2 days",
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAssistantHandler_WellnessSupport(t *testing.T) {
	t.Run("returns supportive reply", func(t *testing.T) {
		service := services.NewAssistantService(&fakeGenerator{text: "That sounds really hard."})
		handler := handlers.NewAssistantHandler(service)

		w := httptest.NewRecorder()
		handler.WellnessSupport(w, postJSON("/api/assistant/wellness", map[string]interface{}{
			"concern": "I feel anxious about exams",
		}))

		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "That sounds really hard.", body["reply"])
	})

	t.Run("surfaces model errors without fallback", func(t *testing.T) {
		service := services.NewAssistantService(&fakeGenerator{textErr: errors.New("upstream timeout")})
		handler := handlers.NewAssistantHandler(service)

		w := httptest.NewRecorder()
		handler.WellnessSupport(w, postJSON("/api/assistant/wellness", map[string]interface{}{
			"concern": "I feel anxious",
		}))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
