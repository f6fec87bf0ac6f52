package out_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	oracleout "lernova/internal/modules/oracle/adapter/out"
	"lernova/internal/modules/oracle/domain"
)

func TestGroqProviderSendsChatCompletion(t *testing.T) {
	t.Parallel()
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openai/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer secret" {
			t.Errorf("missing bearer token")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"DECISION: ALLOW\nCONFIDENCE: 90\nREASON: docs"}}]}`))
	}))
	defer server.Close()

	provider := oracleout.NewGroqProvider(server.URL+"/openai/v1/", "secret", "llama-3.1-8b-instant", server.Client())
	text, err := provider.Complete(context.Background(), domain.CompletionRequest{System: "sys", Prompt: "check", Temperature: 0.3, MaxTokens: 150})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !strings.HasPrefix(text, "DECISION: ALLOW") {
		t.Fatalf("unexpected text %q", text)
	}
	if got["model"] != "llama-3.1-8b-instant" || got["max_tokens"] != float64(150) || got["temperature"] != 0.3 {
		t.Fatalf("unexpected request body: %v", got)
	}
	messages, ok := got["messages"].([]any)
	if !ok || len(messages) != 2 {
		t.Fatalf("expected system and user messages, got %v", got["messages"])
	}
}

func TestGroqProviderErrors(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limit reached","type":"rate_limit_exceeded"}}`))
	}))
	defer server.Close()

	req := domain.CompletionRequest{Prompt: "check", Temperature: 0.3, MaxTokens: 10}
	provider := oracleout.NewGroqProvider(server.URL, "secret", "m", server.Client())
	_, err := provider.Complete(context.Background(), req)
	var apiErr *openai.APIError
	if err == nil || !strings.Contains(err.Error(), "429") || !errors.As(err, &apiErr) || apiErr.Message != "rate limit reached" {
		t.Fatalf("expected typed 429 error, got %v", err)
	}
	if errors.Is(err, domain.ErrProviderUnavailable) {
		t.Fatalf("rate limiting is not an unavailable provider: %v", err)
	}

	denied := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
	}))
	defer denied.Close()
	provider = oracleout.NewGroqProvider(denied.URL, "wrong", "m", denied.Client())
	if _, err := provider.Complete(context.Background(), req); !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Fatalf("expected rejected key to be unavailable, got %v", err)
	}

	keyless := oracleout.NewGroqProvider(server.URL, "", "m", server.Client())
	if _, err := keyless.Complete(context.Background(), req); !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Fatalf("expected provider unavailable without key, got %v", err)
	}

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer empty.Close()
	provider = oracleout.NewGroqProvider(empty.URL, "secret", "m", empty.Client())
	if _, err := provider.Complete(context.Background(), req); !errors.Is(err, domain.ErrEmptyCompletion) {
		t.Fatalf("expected empty completion, got %v", err)
	}
}
