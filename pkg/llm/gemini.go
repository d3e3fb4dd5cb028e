package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// GeminiService holds the Gemini AI client.
type GeminiService struct {
	client    *genai.Client
	modelName string
}

// NewGeminiService creates a new Gemini AI service instance.
func NewGeminiService(ctx context.Context, apiKey, modelName string) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiService{client: client, modelName: modelName}, nil
}

// Complete sends the system prompt as the model's system instruction and the
// user prompt as the only turn. Text parts of the first candidate are joined.
func (s *GeminiService) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	// A model value per call: SystemInstruction is a field on the model and
	// concurrent requests must not share it.
	model := s.client.GenerativeModel(s.modelName)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}

	resp, err := model.GenerateContent(ctx, genai.Text(userPrompt))
	if err != nil {
		log.Errorf("Error generating content with Gemini: %v", err)
		return "", classifyGeminiError(err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Warn("Gemini returned no candidates or content.")
		return "", errors.New("gemini API returned no content")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("gemini API returned non-text content")
	}
	return sb.String(), nil
}

// classifyGeminiError maps SDK errors onto StatusError so Gemini failures are
// reported with the same HTTP codes as the gateway client.
func classifyGeminiError(err error) error {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return &StatusError{StatusCode: gErr.Code, Body: gErr.Message}
	}

	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("gemini API call failed: %w", err)
	}
	code := http.StatusBadGateway
	switch st.Code() {
	case codes.ResourceExhausted:
		code = http.StatusTooManyRequests
	case codes.Unauthenticated:
		code = http.StatusUnauthorized
	case codes.PermissionDenied:
		code = http.StatusForbidden
	case codes.InvalidArgument:
		code = http.StatusBadRequest
	case codes.Unavailable:
		code = http.StatusServiceUnavailable
	}
	return &StatusError{StatusCode: code, Body: st.Message()}
}

// Close releases the underlying Gemini client.
func (s *GeminiService) Close() error {
	log.Info("Closing Gemini AI service client.")
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
