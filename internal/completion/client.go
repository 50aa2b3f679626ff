// Package completion holds the single-call request/parse primitive for the
// model endpoint. The core never retries here: a non-success response is
// surfaced verbatim as a TransportError and left to the caller.
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"adforge/internal/schema"
)

// Client is the completion contract: one prompt, one model identifier, one
// credential, one round trip.
type Client interface {
	Complete(ctx context.Context, prompt, model, credential string) (string, error)
}

// Config holds configuration for the HTTP client.
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for an OpenAI-compatible endpoint.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "https://api.openai.com/v1",
		Timeout:     120 * time.Second,
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}

// HTTPClient implements Client against an OpenAI-style chat-completions API.
type HTTPClient struct {
	baseURL     string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
}

// NewHTTPClient creates a client with default config.
func NewHTTPClient() *HTTPClient {
	return NewHTTPClientWithConfig(DefaultConfig())
}

// NewHTTPClientWithConfig creates a client with custom config.
func NewHTTPClientWithConfig(cfg Config) *HTTPClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultConfig().BaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultConfig().MaxTokens
	}
	return &HTTPClient{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
	}
}

// chatRequest represents the API request structure.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

// chatMessage represents a message in the conversation.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse represents the API response structure.
type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
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

// Complete performs exactly one round trip and returns the completion text.
func (c *HTTPClient) Complete(ctx context.Context, prompt, model, credential string) (string, error) {
	if credential == "" {
		return "", schema.ErrCredentialMissing
	}

	reqBody := chatRequest{
		Model:       model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return "", &schema.TransportError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+credential)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &schema.TransportError{Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &schema.TransportError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &schema.TransportError{Err: fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", &schema.TransportError{Err: fmt.Errorf("failed to parse response envelope: %w", err)}
	}

	if chatResp.Error != nil {
		return "", &schema.TransportError{Err: fmt.Errorf("API error: %s", chatResp.Error.Message)}
	}

	if len(chatResp.Choices) == 0 {
		return "", &schema.TransportError{Err: fmt.Errorf("no completion returned")}
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}
