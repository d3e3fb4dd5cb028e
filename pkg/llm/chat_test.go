package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func completionServer(t *testing.T, status int, payload any, inspect func(*http.Request)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if inspect != nil {
			inspect(r)
		}
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func contentPayload(content string) map[string]any {
	return map[string]any{
		"choices": []any{
			map[string]any{
				"message": map[string]any{"role": "assistant", "content": content},
			},
		},
	}
}

func TestChatClientComplete(t *testing.T) {
	var got chatCompletionRequest
	server := completionServer(t, http.StatusOK, contentPayload(`{"playlistName":"x"}`), func(r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected Authorization header %q", auth)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected Content-Type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
	})

	client := NewChatClient(ChatConfig{APIKey: "test-key", URL: server.URL, Model: "demo-model"})
	content, err := client.Complete(context.Background(), "system text", "user text")
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if content != `{"playlistName":"x"}` {
		t.Fatalf("unexpected content %q", content)
	}
	if got.Model != "demo-model" || got.Stream {
		t.Fatalf("unexpected request %+v", got)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[0].Content != "system text" ||
		got.Messages[1].Role != "user" || got.Messages[1].Content != "user text" {
		t.Fatalf("unexpected messages %+v", got.Messages)
	}
}

func TestChatClientStatusErrors(t *testing.T) {
	for _, status := range []int{http.StatusTooManyRequests, http.StatusPaymentRequired, http.StatusInternalServerError} {
		server := completionServer(t, status, map[string]string{"error": "nope"}, nil)
		client := NewChatClient(ChatConfig{APIKey: "k", URL: server.URL, Model: "m"})

		_, err := client.Complete(context.Background(), "s", "u")
		var statusErr *StatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("status %d: expected StatusError, got %v", status, err)
		}
		if statusErr.StatusCode != status {
			t.Fatalf("expected status %d, got %d", status, statusErr.StatusCode)
		}
	}
}

func TestChatClientEmptyChoices(t *testing.T) {
	server := completionServer(t, http.StatusOK, map[string]any{"choices": []any{}}, nil)
	client := NewChatClient(ChatConfig{APIKey: "k", URL: server.URL, Model: "m"})
	if _, err := client.Complete(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestChatClientRequiresAPIKey(t *testing.T) {
	client := NewChatClient(ChatConfig{URL: "http://127.0.0.1:1", Model: "m"})
	if _, err := client.Complete(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected missing api key error")
	}
}

func TestChatClientHonoursContext(t *testing.T) {
	server := completionServer(t, http.StatusOK, contentPayload("late"), nil)
	client := NewChatClient(ChatConfig{APIKey: "k", URL: server.URL, Model: "m"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.Complete(ctx, "s", "u"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestChatClientRejectsOversizedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The client stops reading early, so write errors are expected.
		_ = json.NewEncoder(w).Encode(contentPayload(strings.Repeat("{", maxResponseBytes)))
	}))
	t.Cleanup(server.Close)

	client := NewChatClient(ChatConfig{APIKey: "test-key", URL: server.URL, Model: "demo-model"})
	_, err := client.Complete(context.Background(), "system", "user")
	if err == nil || !strings.Contains(err.Error(), "exceeds") {
		t.Fatalf("expected size error, got %v", err)
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		t.Fatalf("expected plain error, got status error %v", statusErr)
	}
}
