// Package config loads caseforge configuration from ~/.caseforge/config.json
// with environment-variable overrides. The config file is optional; provider
// API keys fall back to the conventional environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// UserConfig holds all caseforge configuration.
//
// Supported providers and default models:
//   - anthropic: claude-sonnet-4-20250514 (default)
//   - openai:    gpt-4o (default)
//   - gemini:    gemini-2.5-flash (default)
type UserConfig struct {
	// Provider selection (anthropic, openai, gemini). Empty means the first
	// provider with a configured key, in that priority order.
	Provider string `json:"provider,omitempty"`

	// API keys per provider.
	AnthropicAPIKey string `json:"anthropic_api_key,omitempty"`
	OpenAIAPIKey    string `json:"openai_api_key,omitempty"`
	GeminiAPIKey    string `json:"gemini_api_key,omitempty"`

	// Optional model override applied to the selected provider.
	Model string `json:"model,omitempty"`

	// Generation defaults.
	MaxTokens      int     `json:"max_tokens,omitempty"`
	Temperature    float64 `json:"temperature,omitempty"`
	TimeoutSeconds int     `json:"timeout_seconds,omitempty"`

	// Retry policy for the provider router.
	MaxRetries       int `json:"max_retries,omitempty"`
	RetryBaseDelayMS int `json:"retry_base_delay_ms,omitempty"`
	RetryMaxDelayMS  int `json:"retry_max_delay_ms,omitempty"`
}

// DefaultUserConfigPath returns ~/.caseforge/config.json.
func DefaultUserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".caseforge", "config.json")
	}
	return filepath.Join(home, ".caseforge", "config.json")
}

// Load reads the config file at path (or the default path when empty) and
// applies environment overrides. A missing file is not an error; it yields
// an env-only config.
func Load(path string) (*UserConfig, error) {
	if path == "" {
		path = DefaultUserConfigPath()
	}

	cfg := &UserConfig{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// env-only config
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Environment variables recognized as overrides. Keys override file values
// only when the file left them empty, matching "config.json first, then env".
func (c *UserConfig) applyEnvOverrides() {
	if c.AnthropicAPIKey == "" {
		c.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if c.OpenAIAPIKey == "" {
		c.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.GeminiAPIKey == "" {
		c.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if v := os.Getenv("CASEFORGE_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("CASEFORGE_MODEL"); v != "" {
		c.Model = v
	}
}

// APIKeyFor returns the configured key for a provider name.
func (c *UserConfig) APIKeyFor(provider string) string {
	switch provider {
	case "anthropic":
		return c.AnthropicAPIKey
	case "openai":
		return c.OpenAIAPIKey
	case "gemini":
		return c.GeminiAPIKey
	default:
		return ""
	}
}

// ActiveProvider resolves the provider selection. Priority: explicit
// Provider field, then the first provider with a key in the order
// anthropic, openai, gemini. Returns empty strings when nothing is
// configured.
func (c *UserConfig) ActiveProvider() (string, string) {
	if c.Provider != "" {
		return c.Provider, c.APIKeyFor(c.Provider)
	}
	for _, p := range []string{"anthropic", "openai", "gemini"} {
		if key := c.APIKeyFor(p); key != "" {
			return p, key
		}
	}
	return "", ""
}
