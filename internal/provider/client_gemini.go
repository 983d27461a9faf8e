package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"caseforge/internal/types"
)

// GeminiClient implements types.LLMClient for the Gemini generateContent API.
type GeminiClient struct {
	cfg        Config
	httpClient *http.Client
}

// NewGeminiClient creates a client with default config.
func NewGeminiClient(apiKey string) *GeminiClient {
	return NewGeminiClientWithConfig(DefaultGeminiConfig(apiKey))
}

// NewGeminiClientWithConfig creates a client with custom config.
func NewGeminiClientWithConfig(cfg Config) *GeminiClient {
	return &GeminiClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// SetModel changes the model used for completions.
func (c *GeminiClient) SetModel(model string) { c.cfg.Model = model }

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	Contents          []geminiContent        `json:"contents"`
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
			Role  string       `json:"role"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// Chat sends the message sequence and returns the completion text. System
// messages map to systemInstruction; assistant turns map to the "model" role.
func (c *GeminiClient) Chat(ctx context.Context, messages []types.ChatMessage, gen *types.GenerationConfig) (string, error) {
	if c.cfg.APIKey == "" {
		return "", newError(string(NameGemini), KindAuth, "API key not configured")
	}

	model := c.cfg.Model
	maxTokens := c.cfg.MaxTokens
	temperature := c.cfg.Temperature
	applyGeneration(&model, &maxTokens, &temperature, gen)

	req := geminiRequest{
		GenerationConfig: geminiGenerationConfig{
			Temperature:     temperature,
			MaxOutputTokens: maxTokens,
		},
	}
	for _, m := range messages {
		switch m.Role {
		case "system":
			req.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: m.Content}}}
		case "assistant", "model":
			req.Contents = append(req.Contents, geminiContent{Role: "model", Parts: []geminiPart{{Text: m.Content}}})
		default:
			req.Contents = append(req.Contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: m.Content}}})
		}
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", newError(string(NameGemini), KindResponse, "marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.cfg.BaseURL, model, c.cfg.APIKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return "", newError(string(NameGemini), KindConfig, "create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", classifyTransportErr(string(NameGemini), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", newError(string(NameGemini), KindNetwork, "read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", newError(string(NameGemini), classifyStatus(resp.StatusCode),
			"status %d: %s", resp.StatusCode, truncateBody(body))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", newError(string(NameGemini), KindResponse, "parse response: %w", err)
	}
	if parsed.Error != nil {
		return "", newError(string(NameGemini), KindResponse, "API error: %s", parsed.Error.Message)
	}
	if len(parsed.Candidates) == 0 {
		return "", newError(string(NameGemini), KindResponse, "no completion returned")
	}

	var result strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		result.WriteString(part.Text)
	}
	return strings.TrimSpace(result.String()), nil
}
