package types

import "context"

// ChatMessage is one turn in a generation conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "system", "user", or "assistant"
	Content string `json:"content"`
}

// GenerationConfig carries per-request generation parameters. A nil config
// means provider defaults.
type GenerationConfig struct {
	Model       string  `json:"model,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

// LLMClient defines the interface for LLM providers. Implementations do not
// retry; the provider router owns the retry/backoff discipline and relies on
// clients to classify failures into the provider error taxonomy.
type LLMClient interface {
	// Chat sends an ordered message sequence and returns the raw completion
	// text, trimmed of surrounding whitespace.
	Chat(ctx context.Context, messages []ChatMessage, cfg *GenerationConfig) (string, error)
}
