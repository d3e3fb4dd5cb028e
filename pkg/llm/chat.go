package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	defaultHTTPTimeout = 60 * time.Second
	maxErrorBodyBytes  = 2048
	maxResponseBytes   = 1 << 20
)

// ChatConfig captures the settings for an OpenAI-compatible chat completion endpoint.
type ChatConfig struct {
	APIKey  string
	URL     string
	Model   string
	Timeout time.Duration
}

// ChatClient calls an OpenAI-compatible chat completion endpoint.
type ChatClient struct {
	cfg        ChatConfig
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*ChatClient)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *ChatClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func NewChatClient(cfg ChatConfig, opts ...Option) *ChatClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	client := &ChatClient{
		cfg: ChatConfig{
			APIKey:  strings.TrimSpace(cfg.APIKey),
			URL:     strings.TrimSpace(cfg.URL),
			Model:   strings.TrimSpace(cfg.Model),
			Timeout: timeout,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete posts a system and a user message and returns choices[0].message.content.
func (c *ChatClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", errors.New("llm complete: api key required")
	}
	if c.cfg.URL == "" {
		return "", errors.New("llm complete: endpoint url required")
	}

	encoded, err := json.Marshal(chatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm request: encode body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("llm request: new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm request: http error (timeout=%s): %w", c.cfg.Timeout, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return "", fmt.Errorf("llm request: read body: %w", err)
	}
	if len(body) > maxResponseBytes {
		return "", fmt.Errorf("llm request: response exceeds %d bytes", maxResponseBytes)
	}
	log.WithFields(log.Fields{
		"model":       c.cfg.Model,
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("Chat completion finished")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if len(body) > maxErrorBodyBytes {
			body = body[:maxErrorBodyBytes]
		}
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("llm request: decode response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("llm request: empty choices")
	}
	return completion.Choices[0].Message.Content, nil
}
