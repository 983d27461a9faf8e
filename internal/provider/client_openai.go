package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"caseforge/internal/types"
)

// OpenAIClient implements types.LLMClient for the OpenAI chat completions API.
type OpenAIClient struct {
	cfg        Config
	httpClient *http.Client
}

// NewOpenAIClient creates a client with default config.
func NewOpenAIClient(apiKey string) *OpenAIClient {
	return NewOpenAIClientWithConfig(DefaultOpenAIConfig(apiKey))
}

// NewOpenAIClientWithConfig creates a client with custom config.
func NewOpenAIClientWithConfig(cfg Config) *OpenAIClient {
	return &OpenAIClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// SetModel changes the model used for completions.
func (c *OpenAIClient) SetModel(model string) { c.cfg.Model = model }

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature float64         `json:"temperature,omitempty"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

// Chat sends the message sequence and returns the completion text.
func (c *OpenAIClient) Chat(ctx context.Context, messages []types.ChatMessage, gen *types.GenerationConfig) (string, error) {
	if c.cfg.APIKey == "" {
		return "", newError(string(NameOpenAI), KindAuth, "API key not configured")
	}

	req := openAIRequest{
		Model:       c.cfg.Model,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openAIMessage{Role: m.Role, Content: m.Content})
	}
	applyGeneration(&req.Model, &req.MaxTokens, &req.Temperature, gen)

	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", newError(string(NameOpenAI), KindResponse, "marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return "", newError(string(NameOpenAI), KindConfig, "create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", classifyTransportErr(string(NameOpenAI), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", newError(string(NameOpenAI), KindNetwork, "read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", newError(string(NameOpenAI), classifyStatus(resp.StatusCode),
			"status %d: %s", resp.StatusCode, truncateBody(body))
	}

	var parsed openAIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", newError(string(NameOpenAI), KindResponse, "parse response: %w", err)
	}
	if parsed.Error != nil {
		return "", newError(string(NameOpenAI), KindResponse, "API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", newError(string(NameOpenAI), KindResponse, "no completion returned")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
