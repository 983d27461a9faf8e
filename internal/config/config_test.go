package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY",
		"CASEFORGE_PROVIDER", "CASEFORGE_MODEL",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_MissingFileIsEnvOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-env")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, "sk-env", cfg.OpenAIAPIKey)
	assert.Empty(t, cfg.AnthropicAPIKey)
}

func TestLoad_MalformedFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "{not json")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_FileValuesWinOverKeyEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "from-env")
	path := writeConfig(t, `{"anthropic_api_key": "from-file"}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.AnthropicAPIKey)
}

func TestLoad_ProviderAndModelEnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("CASEFORGE_PROVIDER", "gemini")
	t.Setenv("CASEFORGE_MODEL", "gemini-2.5-pro")
	path := writeConfig(t, `{"provider": "anthropic", "model": "claude-sonnet-4-20250514"}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "gemini-2.5-pro", cfg.Model)
}

func TestActiveProvider_Priority(t *testing.T) {
	cfg := &UserConfig{OpenAIAPIKey: "sk-o", GeminiAPIKey: "sk-g"}
	name, key := cfg.ActiveProvider()
	assert.Equal(t, "openai", name)
	assert.Equal(t, "sk-o", key)

	cfg.AnthropicAPIKey = "sk-a"
	name, key = cfg.ActiveProvider()
	assert.Equal(t, "anthropic", name)
	assert.Equal(t, "sk-a", key)

	cfg.Provider = "gemini"
	name, key = cfg.ActiveProvider()
	assert.Equal(t, "gemini", name)
	assert.Equal(t, "sk-g", key)
}

func TestActiveProvider_NothingConfigured(t *testing.T) {
	name, key := (&UserConfig{}).ActiveProvider()
	assert.Empty(t, name)
	assert.Empty(t, key)
}

func TestAPIKeyFor_Unknown(t *testing.T) {
	cfg := &UserConfig{AnthropicAPIKey: "sk-a"}
	assert.Empty(t, cfg.APIKeyFor("cohere"))
}

func TestLoad_RetrySettings(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `{"max_retries": 5, "retry_base_delay_ms": 250, "retry_max_delay_ms": 4000}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 250, cfg.RetryBaseDelayMS)
	assert.Equal(t, 4000, cfg.RetryMaxDelayMS)
}
