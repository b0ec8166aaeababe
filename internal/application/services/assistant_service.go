package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xeipuuv/gojsonschema"

	"github.com/swasthly/healthassist/internal/domain/entities"
	"github.com/swasthly/healthassist/internal/domain/providers"
	apperrors "github.com/swasthly/healthassist/pkg/errors"
)

// symptomAnalysisSchema constrains the model's structured symptom output.
// The same schema is sent to the model as a response schema and used to
// validate what comes back before trusting it.
const symptomAnalysisSchema = `{
	"type": "object",
	"properties": {
		"analysis": {"type": "string"},
		"recommendations": {"type": "array", "items": {"type": "string"}},
		"urgency_level": {"type": "string", "enum": ["low", "medium", "high"]},
		"suggested_actions": {"type": "array", "items": {"type": "string"}}
	},
	"required": ["analysis", "recommendations", "urgency_level", "suggested_actions"]
}`

var defaultRecommendations = []string{
	"Rest and monitor symptoms",
	"Stay hydrated",
	"Consult healthcare provider if symptoms persist",
}

var defaultSuggestedActions = []string{
	"Monitor symptoms",
	"Seek medical care if condition worsens",
}

// AssistantService generates health guidance through a text generation
// provider. Every caller-facing method fails with a configuration error when
// no provider is wired, without attempting a network call.
type AssistantService struct {
	generator providers.TextGenerator
}

// NewAssistantService creates a new assistant service. generator may be nil
// when no model is configured.
func NewAssistantService(generator providers.TextGenerator) *AssistantService {
	return &AssistantService{generator: generator}
}

// GenerateChatResponse produces the assistant's next turn for the symptom
// chat. The conversation history is flattened into the prompt.
func (s *AssistantService) GenerateChatResponse(ctx context.Context, userMessage string, history []entities.ChatMessage) (string, error) {
	if err := s.checkConfigured(); err != nil {
		return "", err
	}

	var transcript strings.Builder
	for _, msg := range history {
		speaker := "Patient"
		if msg.Role == entities.ChatRoleAssistant {
			speaker = "AI Assistant"
		}
		transcript.WriteString(fmt.Sprintf("%s: %s\n", speaker, msg.Content))
	}

	prompt := fmt.Sprintf(`You are a helpful medical AI assistant providing preliminary health guidance. You should:

1. Ask relevant follow-up questions to gather more information
2. Provide general health advice and recommendations
3. Always emphasize that you're not replacing professional medical care
4. Suggest consulting healthcare professionals when appropriate
5. Be empathetic and supportive
6. Keep responses concise but informative

Previous conversation:
%s
Current patient message: %s

Please respond as a caring medical AI assistant. Focus on gathering relevant information and providing helpful guidance while being clear about limitations.`, transcript.String(), userMessage)

	return s.generator.GenerateText(ctx, prompt)
}

// AnalyzeSymptoms produces a structured assessment of the patient's
// symptoms. Schema-constrained output is tried first; if the provider can't
// honor it or returns something that doesn't validate, the free-text path
// with heuristic extraction takes over.
func (s *AssistantService) AnalyzeSymptoms(ctx context.Context, req *entities.SymptomAnalysisRequest) (*entities.SymptomAnalysisResponse, error) {
	if err := s.checkConfigured(); err != nil {
		return nil, err
	}

	if response, err := s.analyzeStructured(ctx, req); err == nil {
		return response, nil
	} else if apperrors.IsType(err, apperrors.ErrorTypeUnauthorized) {
		return nil, err
	} else {
		log.Debug().Err(err).Msg("Structured symptom analysis unavailable, using free-text path")
	}

	return s.analyzeFreeText(ctx, req)
}

func (s *AssistantService) analyzeStructured(ctx context.Context, req *entities.SymptomAnalysisRequest) (*entities.SymptomAnalysisResponse, error) {
	prompt := fmt.Sprintf(`As a medical AI assistant, analyze the following patient information and respond with a JSON object containing: "analysis" (a comprehensive assessment covering the likely conditions and an explicit disclaimer that this is not a medical diagnosis), "recommendations" (general care recommendations), "urgency_level" (one of "low", "medium", "high") and "suggested_actions" (warning signs that require medical attention).

Patient Information:
- Age: %s
- Gender: %s
- Symptoms: %s
- Duration: %s
- Severity: %s

Keep the response professional, empathetic, and medically sound while emphasizing the limitations of AI diagnosis.`,
		orNotSpecified(req.Age), orNotSpecified(req.Gender), req.Symptoms,
		orNotSpecified(req.Duration), orNotSpecified(req.Severity))

	raw, err := s.generator.GenerateStructured(ctx, prompt, json.RawMessage(symptomAnalysisSchema))
	if err != nil {
		return nil, err
	}

	validation, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(symptomAnalysisSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to validate structured response: %w", err)
	}
	if !validation.Valid() {
		return nil, fmt.Errorf("structured response does not match schema: %v", validation.Errors())
	}

	response := &entities.SymptomAnalysisResponse{}
	if err := json.Unmarshal(raw, response); err != nil {
		return nil, fmt.Errorf("failed to decode structured response: %w", err)
	}

	if len(response.Recommendations) == 0 {
		response.Recommendations = defaultRecommendations
	}
	if len(response.SuggestedActions) == 0 {
		response.SuggestedActions = defaultSuggestedActions
	}

	return response, nil
}

func (s *AssistantService) analyzeFreeText(ctx context.Context, req *entities.SymptomAnalysisRequest) (*entities.SymptomAnalysisResponse, error) {
	prompt := fmt.Sprintf(`As a medical AI assistant, analyze the following patient information and provide a structured assessment:

Patient Information:
- Age: %s
- Gender: %s
- Symptoms: %s
- Duration: %s
- Severity: %s

Please provide a comprehensive analysis in the following format:

PRELIMINARY ASSESSMENT:
[Brief overview of the condition based on symptoms]

POSSIBLE CONDITIONS:
[List 2-3 most likely conditions with brief explanations]

RECOMMENDATIONS:
[General care recommendations]

URGENCY LEVEL:
[Classify as: LOW, MEDIUM, or HIGH]

WHEN TO SEEK CARE:
[Specific warning signs that require immediate medical attention]

IMPORTANT DISCLAIMER:
Always include that this is not a medical diagnosis and professional consultation is recommended.

Keep the response professional, empathetic, and medically sound while emphasizing the limitations of AI diagnosis.`,
		orNotSpecified(req.Age), orNotSpecified(req.Gender), req.Symptoms,
		orNotSpecified(req.Duration), orNotSpecified(req.Severity))

	analysisText, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &entities.SymptomAnalysisResponse{
		Analysis:         analysisText,
		Recommendations:  extractRecommendations(analysisText),
		UrgencyLevel:     extractUrgencyLevel(analysisText),
		SuggestedActions: extractSuggestedActions(analysisText),
	}, nil
}

// GenerateWellnessResponse produces a supportive reply for the mental
// wellness companion.
func (s *AssistantService) GenerateWellnessResponse(ctx context.Context, userInput string) (string, error) {
	if err := s.checkConfigured(); err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`You are a compassionate mental wellness AI assistant. Respond to the user's mental health concern with:

1. Empathy and understanding
2. Practical coping strategies
3. Encouragement and support
4. Resources for professional help when appropriate
5. Mindfulness or relaxation techniques
6. Positive affirmations

User's concern: %s

Provide a supportive, caring response that acknowledges their feelings and offers practical help. Keep it warm, professional, and hopeful.`, userInput)

	return s.generator.GenerateText(ctx, prompt)
}

func (s *AssistantService) checkConfigured() error {
	if s.generator == nil {
		return apperrors.NewConfigurationError("assistant model is not configured")
	}
	return nil
}

func orNotSpecified(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Not specified"
	}
	return value
}

// extractUrgencyLevel scans the assessment for an urgency classification.
// Anything ambiguous resolves to low.
func extractUrgencyLevel(text string) entities.UrgencyLevel {
	upper := strings.ToUpper(text)
	if strings.Contains(upper, "HIGH") && strings.Contains(upper, "URGENCY") {
		return entities.UrgencyHigh
	}
	if strings.Contains(upper, "MEDIUM") && strings.Contains(upper, "URGENCY") {
		return entities.UrgencyMedium
	}
	return entities.UrgencyLow
}

// extractRecommendations pulls bullet lines from the RECOMMENDATIONS section.
func extractRecommendations(text string) []string {
	var recommendations []string
	inSection := false

	for _, line := range strings.Split(text, "\n") {
		upper := strings.ToUpper(line)
		if strings.Contains(upper, "RECOMMENDATIONS:") {
			inSection = true
			continue
		}
		if inSection && strings.Contains(upper, ":") {
			inSection = false
		}
		if inSection {
			if bullet, ok := trimBullet(line); ok {
				recommendations = append(recommendations, bullet)
			}
		}
	}

	if len(recommendations) == 0 {
		return defaultRecommendations
	}
	return recommendations
}

// extractSuggestedActions pulls bullet lines from the WHEN TO SEEK CARE (or
// SUGGESTED ACTIONS) section.
func extractSuggestedActions(text string) []string {
	var actions []string
	inSection := false

	for _, line := range strings.Split(text, "\n") {
		upper := strings.ToUpper(line)
		if strings.Contains(upper, "WHEN TO SEEK") || strings.Contains(upper, "SUGGESTED ACTIONS") {
			inSection = true
			continue
		}
		if inSection && strings.Contains(upper, ":") && !strings.Contains(upper, "SEEK") {
			inSection = false
		}
		if inSection {
			if bullet, ok := trimBullet(line); ok {
				actions = append(actions, bullet)
			}
		}
	}

	if len(actions) == 0 {
		return defaultSuggestedActions
	}
	return actions
}

func trimBullet(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "•") || strings.HasPrefix(trimmed, "-") {
		return strings.TrimSpace(strings.TrimLeft(trimmed, "•-")), true
	}
	return "", false
}
