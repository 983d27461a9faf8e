package provider

import "time"

// Name identifies an LLM provider.
type Name string

const (
	NameAnthropic Name = "anthropic"
	NameOpenAI    Name = "openai"
	NameGemini    Name = "gemini"
)

// Config holds per-client settings shared by every backend.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64
}

const (
	defaultTimeout     = 120 * time.Second
	defaultMaxTokens   = 4096
	defaultTemperature = 0.1 // low temperature for structured output
)

// DefaultAnthropicConfig returns sensible defaults.
func DefaultAnthropicConfig(apiKey string) Config {
	return Config{
		APIKey:      apiKey,
		BaseURL:     "https://api.anthropic.com/v1",
		Model:       "claude-sonnet-4-20250514",
		Timeout:     defaultTimeout,
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
	}
}

// DefaultOpenAIConfig returns sensible defaults.
func DefaultOpenAIConfig(apiKey string) Config {
	return Config{
		APIKey:      apiKey,
		BaseURL:     "https://api.openai.com/v1",
		Model:       "gpt-4o",
		Timeout:     defaultTimeout,
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
	}
}

// DefaultGeminiConfig returns sensible defaults.
func DefaultGeminiConfig(apiKey string) Config {
	return Config{
		APIKey:      apiKey,
		BaseURL:     "https://generativelanguage.googleapis.com/v1beta",
		Model:       "gemini-2.5-flash",
		Timeout:     defaultTimeout,
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
	}
}

// Per-provider model tables and context windows. Used by the router's
// handle metadata (SupportsModel, ContextWindow) and the providers command.
var (
	anthropicModels = []string{
		"claude-sonnet-4-20250514",
		"claude-opus-4-20250514",
		"claude-3-5-sonnet-20241022",
		"claude-3-5-haiku-20241022",
	}
	anthropicContextWindows = map[string]int{
		"claude-sonnet-4-20250514":   200000,
		"claude-opus-4-20250514":     200000,
		"claude-3-5-sonnet-20241022": 200000,
		"claude-3-5-haiku-20241022":  200000,
	}

	openAIModels = []string{
		"gpt-4o",
		"gpt-4o-mini",
		"gpt-4-turbo",
		"o1-mini",
	}
	openAIContextWindows = map[string]int{
		"gpt-4o":      128000,
		"gpt-4o-mini": 128000,
		"gpt-4-turbo": 128000,
		"o1-mini":     128000,
	}

	geminiModels = []string{
		"gemini-2.5-flash",
		"gemini-2.5-pro",
		"gemini-2.0-flash",
	}
	geminiContextWindows = map[string]int{
		"gemini-2.5-flash": 1048576,
		"gemini-2.5-pro":   1048576,
		"gemini-2.0-flash": 1048576,
	}
)

// defaultContextWindow is assumed for models missing from the tables.
const defaultContextWindow = 32768
