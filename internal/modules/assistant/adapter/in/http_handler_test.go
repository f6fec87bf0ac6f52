package in_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	assistantin "lernova/internal/modules/assistant/adapter/in"
	"lernova/internal/modules/assistant/dto"
	apperrors "lernova/internal/platform/errors"
)

type fakeUsecase struct {
	lastChat      dto.ChatInput
	lastHighlight dto.HighlightInput
}

func (f *fakeUsecase) Chat(_ context.Context, input dto.ChatInput) (dto.ReplyOutput, error) {
	f.lastChat = input
	return dto.ReplyOutput{Text: "hi", SuggestedWebsites: []dto.SuggestionOutput{{Title: "GitHub", URL: "https://github.com"}}}, nil
}

func (f *fakeUsecase) Summarize(_ context.Context, input dto.SummarizeInput) (dto.ReplyOutput, error) {
	if strings.TrimSpace(input.Content) == "" {
		return dto.ReplyOutput{}, fmt.Errorf("%w: content is required", apperrors.ErrInvalidInput)
	}
	return dto.ReplyOutput{Text: "summary", SuggestedWebsites: []dto.SuggestionOutput{}}, nil
}

func (f *fakeUsecase) Ask(context.Context, dto.QuestionInput) (dto.ReplyOutput, error) {
	return dto.ReplyOutput{}, fmt.Errorf("groq: chat completions returned 503")
}

func (f *fakeUsecase) Highlight(_ context.Context, input dto.HighlightInput) (dto.HighlightOutput, error) {
	f.lastHighlight = input
	return dto.HighlightOutput{ImportantIDs: []int{3}, Topic: input.Topic, Count: 1}, nil
}

func (f *fakeUsecase) SuggestWebsites(context.Context, string) ([]dto.SuggestionOutput, error) {
	return []dto.SuggestionOutput{{Title: "Khan Academy"}}, nil
}

func serve(t *testing.T, router *mux.Router, path, body string) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
	decoded := map[string]any{}
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode %s: %v (%s)", path, err, rec.Body.String())
	}
	return rec.Code, decoded
}

func TestAssistantRoutes(t *testing.T) {
	t.Parallel()
	uc := &fakeUsecase{}
	router := mux.NewRouter()
	assistantin.NewHTTPHandler(uc).Register(router)

	code, body := serve(t, router, "/api/ai/chat", `{"query":"learn go","context":"page","page_url":"https://go.dev"}`)
	if code != http.StatusOK || body["success"] != true || body["text"] != "hi" {
		t.Fatalf("unexpected chat response %d %v", code, body)
	}
	if sites, ok := body["suggested_websites"].([]any); !ok || len(sites) != 1 {
		t.Fatalf("chat should return suggestions: %v", body)
	}
	if uc.lastChat.PageURL != "https://go.dev" || uc.lastChat.Context != "page" {
		t.Fatalf("chat input not decoded: %+v", uc.lastChat)
	}

	code, body = serve(t, router, "/api/ai/summarize", `{"content":"long page"}`)
	if code != http.StatusOK || body["text"] != "summary" {
		t.Fatalf("unexpected summarize response %d %v", code, body)
	}
	code, body = serve(t, router, "/api/ai/summarize", `{"content":""}`)
	if code != http.StatusBadRequest || body["success"] != false {
		t.Fatalf("blank content should be a 400, got %d %v", code, body)
	}

	code, body = serve(t, router, "/api/ai/question", `{"question":"why","context":"x"}`)
	if code != http.StatusInternalServerError || !strings.Contains(body["error"].(string), "503") {
		t.Fatalf("oracle failure should be a 500, got %d %v", code, body)
	}

	code, body = serve(t, router, "/api/ai/highlight-important",
		`{"topic":"go","pageTitle":"Tour","pageUrl":"https://go.dev/tour","elements":[{"id":3,"tag":"p","text":"go f()"}]}`)
	if code != http.StatusOK || body["count"] != float64(1) {
		t.Fatalf("unexpected highlight response %d %v", code, body)
	}
	if uc.lastHighlight.PageTitle != "Tour" || len(uc.lastHighlight.Elements) != 1 || uc.lastHighlight.Elements[0].ID != 3 {
		t.Fatalf("highlight input not decoded: %+v", uc.lastHighlight)
	}

	code, body = serve(t, router, "/api/ai/suggest-websites", `{"topic":"math"}`)
	if code != http.StatusOK || body["topic"] != "math" {
		t.Fatalf("unexpected suggestions response %d %v", code, body)
	}

	code, _ = serve(t, router, "/api/ai/chat", `{not json`)
	if code != http.StatusBadRequest {
		t.Fatalf("malformed body should be a 400, got %d", code)
	}
}
