package provider

import (
	"time"

	"go.uber.org/zap"

	"caseforge/internal/config"
	"caseforge/internal/logging"
	"caseforge/internal/types"
)

// NewHandles builds provider handles from user config. Every provider with a
// configured key becomes a handle; when cfg.Provider names one explicitly it
// moves to the front of registration order. A provider whose construction
// cannot proceed is simply absent from the set; it never blocks router
// construction.
func NewHandles(cfg *config.UserConfig) []*Handle {
	log := logging.Get(logging.CategoryProvider)

	build := func(name string) *Handle {
		key := cfg.APIKeyFor(name)
		if key == "" {
			return nil
		}
		var client types.LLMClient
		var models []string
		var windows map[string]int
		switch Name(name) {
		case NameAnthropic:
			c := DefaultAnthropicConfig(key)
			applyConfigDefaults(&c, cfg)
			client = NewAnthropicClientWithConfig(c)
			models, windows = anthropicModels, anthropicContextWindows
		case NameOpenAI:
			c := DefaultOpenAIConfig(key)
			applyConfigDefaults(&c, cfg)
			client = NewOpenAIClientWithConfig(c)
			models, windows = openAIModels, openAIContextWindows
		case NameGemini:
			c := DefaultGeminiConfig(key)
			applyConfigDefaults(&c, cfg)
			client = NewGeminiClientWithConfig(c)
			models, windows = geminiModels, geminiContextWindows
		default:
			log.Warn("unknown provider in config, skipping", zap.String("provider", name))
			return nil
		}
		return &Handle{
			Name:           name,
			Client:         client,
			Available:      true,
			models:         models,
			contextWindows: windows,
		}
	}

	names := []string{string(NameAnthropic), string(NameOpenAI), string(NameGemini)}
	if cfg.Provider != "" {
		reordered := []string{cfg.Provider}
		for _, n := range names {
			if n != cfg.Provider {
				reordered = append(reordered, n)
			}
		}
		names = reordered
	}

	var handles []*Handle
	for _, name := range names {
		if h := build(name); h != nil {
			handles = append(handles, h)
		}
	}
	return handles
}

func applyConfigDefaults(c *Config, cfg *config.UserConfig) {
	if cfg.Model != "" {
		c.Model = cfg.Model
	}
	if cfg.MaxTokens > 0 {
		c.MaxTokens = cfg.MaxTokens
	}
	if cfg.Temperature > 0 {
		c.Temperature = cfg.Temperature
	}
	if cfg.TimeoutSeconds > 0 {
		c.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
}

// retryPolicyFrom maps config retry settings onto a policy, keeping defaults
// for unset fields.
func retryPolicyFrom(cfg *config.UserConfig) RetryPolicy {
	policy := DefaultRetryPolicy()
	if cfg.MaxRetries > 0 {
		policy.MaxAttempts = cfg.MaxRetries
	}
	if cfg.RetryBaseDelayMS > 0 {
		policy.BaseDelay = time.Duration(cfg.RetryBaseDelayMS) * time.Millisecond
	}
	if cfg.RetryMaxDelayMS > 0 {
		policy.MaxDelay = time.Duration(cfg.RetryMaxDelayMS) * time.Millisecond
	}
	return policy
}

// NewRouterFromEnv loads user config (path empty means the default location)
// and builds a router over every configured provider.
func NewRouterFromEnv(configPath string) (*Router, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, &Error{Provider: "router", Kind: KindConfig, Err: err}
	}
	return NewRouter(NewHandles(cfg), retryPolicyFrom(cfg))
}
