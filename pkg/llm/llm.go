// Package llm talks to chat-completion providers. Two backends implement
// Completer: ChatClient for OpenAI-compatible HTTP gateways and GeminiService
// for the Google Generative AI SDK.
package llm

import (
	"context"
	"fmt"
	"strings"
)

// Completer sends one non-streaming chat request and returns the free-text reply.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// StatusError reports a non-success answer from the provider. StatusCode uses
// HTTP semantics for every backend so callers can tell rate limits (429) and
// exhausted credits (402) apart from other failures.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("llm request: http %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}
