package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/swasthly/healthassist/internal/domain/providers"
	"github.com/swasthly/healthassist/pkg/config"
	apperrors "github.com/swasthly/healthassist/pkg/errors"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client calls the Gemini generateContent API. It implements the
// TextGenerator provider: one prompt per call, no streaming, no native
// multi-turn session.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	limiter    *tokenBucket
	breaker    *gobreaker.CircuitBreaker
}

var _ providers.TextGenerator = (*Client)(nil)

// NewClient creates a new Gemini client.
func NewClient(cfg *config.GeminiConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, apperrors.NewConfigurationError("gemini api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}

	return &Client{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		limiter: newTokenBucket(cfg.RateLimitRPM, cfg.RateLimitBurst),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "gemini",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}, nil
}

// NewClientWithOptions allows overriding the base URL and HTTP client (used
// for tests).
func NewClientWithOptions(cfg *config.GeminiConfig, baseURL string, httpClient *http.Client) (*Client, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(baseURL) != "" {
		client.baseURL = baseURL
	}
	if httpClient != nil {
		client.httpClient = httpClient
	}
	return client, nil
}

type generationConfig struct {
	Temperature      float64         `json:"temperature"`
	MaxOutputTokens  int             `json:"maxOutputTokens"`
	ResponseMimeType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type contentPart struct {
	Text string `json:"text"`
}

type content struct {
	Parts []contentPart `json:"parts"`
	Role  string        `json:"role,omitempty"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type candidate struct {
	Content content `json:"content"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

// GenerateText returns the model's free-text response for one prompt.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	text, err := c.generate(ctx, prompt, generationConfig{
		Temperature:     0.7,
		MaxOutputTokens: 1024,
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

// GenerateStructured requests a schema-constrained JSON response.
func (c *Client) GenerateStructured(ctx context.Context, prompt string, schema json.RawMessage) (json.RawMessage, error) {
	if len(schema) == 0 {
		return nil, providers.ErrStructuredOutputUnsupported
	}

	text, err := c.generate(ctx, prompt, generationConfig{
		Temperature:      0.2,
		MaxOutputTokens:  1024,
		ResponseMimeType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return nil, err
	}

	cleaned := stripCodeFences(text)
	if !json.Valid([]byte(cleaned)) {
		return nil, fmt.Errorf("gemini structured response is not valid json")
	}
	return json.RawMessage(cleaned), nil
}

func (c *Client) generate(ctx context.Context, prompt string, genCfg generationConfig) (string, error) {
	if c.limiter != nil {
		waitStart := time.Now()
		if err := c.limiter.Wait(ctx); err != nil {
			recordGeminiMetric(ctx, c.model, 0, 0, err)
			return "", err
		}
		recordGeminiRateLimitWait(ctx, c.model, time.Since(waitStart))
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doGenerate(ctx, prompt, genCfg)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", apperrors.NewExternalError("gemini temporarily unavailable", err)
		}
		return "", err
	}
	return result.(string), nil
}

func (c *Client) doGenerate(ctx context.Context, prompt string, genCfg generationConfig) (string, error) {
	payload := generateRequest{
		Contents: []content{
			{Parts: []contentPart{{Text: prompt}}, Role: "user"},
		},
		GenerationConfig: genCfg,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordGeminiMetric(ctx, c.model, 0, time.Since(start), err)
		return "", apperrors.NewExternalError("gemini request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		recordGeminiMetric(ctx, c.model, resp.StatusCode, time.Since(start), fmt.Errorf("status %d", resp.StatusCode))
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return "", apperrors.NewUnauthorizedError(fmt.Sprintf("gemini request rejected with status %d", resp.StatusCode))
		}
		return "", apperrors.NewExternalError(fmt.Sprintf("gemini request failed with status %d", resp.StatusCode), nil)
	}

	var envelope generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		recordGeminiMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return "", apperrors.NewExternalError("failed to decode gemini response", err)
	}

	var text string
	for _, cand := range envelope.Candidates {
		for _, part := range cand.Content.Parts {
			if part.Text != "" {
				text = part.Text
				break
			}
		}
		if text != "" {
			break
		}
	}

	if text == "" {
		recordGeminiMetric(ctx, c.model, resp.StatusCode, time.Since(start), errors.New("missing output text"))
		return "", apperrors.NewExternalError("gemini response missing output text", nil)
	}

	recordGeminiMetric(ctx, c.model, resp.StatusCode, time.Since(start), nil)
	return text, nil
}

// stripCodeFences removes Markdown code blocks some models wrap JSON in.
func stripCodeFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned)
}
