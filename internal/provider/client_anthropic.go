package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"

	"caseforge/internal/types"
)

// AnthropicClient implements types.LLMClient for the Anthropic messages API.
type AnthropicClient struct {
	cfg        Config
	httpClient *http.Client
}

// NewAnthropicClient creates a client with default config.
func NewAnthropicClient(apiKey string) *AnthropicClient {
	return NewAnthropicClientWithConfig(DefaultAnthropicConfig(apiKey))
}

// NewAnthropicClientWithConfig creates a client with custom config.
func NewAnthropicClientWithConfig(cfg Config) *AnthropicClient {
	return &AnthropicClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// SetModel changes the model used for completions.
func (c *AnthropicClient) SetModel(model string) { c.cfg.Model = model }

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature float64            `json:"temperature,omitempty"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Error      *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Chat sends the message sequence and returns the completion text.
func (c *AnthropicClient) Chat(ctx context.Context, messages []types.ChatMessage, gen *types.GenerationConfig) (string, error) {
	if c.cfg.APIKey == "" {
		return "", newError(string(NameAnthropic), KindAuth, "API key not configured")
	}

	req := anthropicRequest{
		Model:       c.cfg.Model,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}
	for _, m := range messages {
		if m.Role == "system" {
			req.System = m.Content
			continue
		}
		req.Messages = append(req.Messages, anthropicMessage{Role: m.Role, Content: m.Content})
	}
	applyGeneration(&req.Model, &req.MaxTokens, &req.Temperature, gen)

	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", newError(string(NameAnthropic), KindResponse, "marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/messages", bytes.NewReader(jsonData))
	if err != nil {
		return "", newError(string(NameAnthropic), KindConfig, "create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.cfg.APIKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", classifyTransportErr(string(NameAnthropic), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", newError(string(NameAnthropic), KindNetwork, "read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", newError(string(NameAnthropic), classifyStatus(resp.StatusCode),
			"status %d: %s", resp.StatusCode, truncateBody(body))
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", newError(string(NameAnthropic), KindResponse, "parse response: %w", err)
	}
	if parsed.Error != nil {
		return "", newError(string(NameAnthropic), KindResponse, "API error: %s", parsed.Error.Message)
	}
	if len(parsed.Content) == 0 {
		return "", newError(string(NameAnthropic), KindResponse, "no completion returned")
	}

	var result strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			result.WriteString(block.Text)
		}
	}
	return strings.TrimSpace(result.String()), nil
}

// applyGeneration folds per-request overrides into request parameters.
func applyGeneration(model *string, maxTokens *int, temperature *float64, gen *types.GenerationConfig) {
	if gen == nil {
		return
	}
	if gen.Model != "" {
		*model = gen.Model
	}
	if gen.MaxTokens > 0 {
		*maxTokens = gen.MaxTokens
	}
	if gen.Temperature > 0 {
		*temperature = gen.Temperature
	}
}

// classifyTransportErr maps a transport failure onto the error taxonomy:
// deadline/cancellation is a timeout, everything else transient network.
func classifyTransportErr(provider string, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return newError(provider, KindTimeout, "request timed out: %w", err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return newError(provider, KindTimeout, "request timed out: %w", err)
	}
	return newError(provider, KindNetwork, "request failed: %w", err)
}

func truncateBody(body []byte) string {
	const max = 512
	s := string(body)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
