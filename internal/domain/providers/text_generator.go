package providers

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrStructuredOutputUnsupported is returned by GenerateStructured when the
// underlying model or API version cannot honor a response schema. Callers
// fall back to free-text generation and heuristic parsing.
var ErrStructuredOutputUnsupported = errors.New("structured output not supported")

// TextGenerator is the single boundary to the hosted language model: one
// prompt in, one response out. Conversation context is flattened into the
// prompt by the caller; there is no streaming or native multi-turn session.
type TextGenerator interface {
	// GenerateText returns the model's free-text response for a prompt.
	GenerateText(ctx context.Context, prompt string) (string, error)

	// GenerateStructured returns a JSON response constrained by the given
	// schema, when the backing API supports schema-constrained output.
	GenerateStructured(ctx context.Context, prompt string, schema json.RawMessage) (json.RawMessage, error)
}
