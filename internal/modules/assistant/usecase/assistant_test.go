package usecase_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"lernova/internal/modules/assistant/domain"
	"lernova/internal/modules/assistant/dto"
	assistantin "lernova/internal/modules/assistant/port/in"
	assistantout "lernova/internal/modules/assistant/port/out"
	"lernova/internal/modules/assistant/service"
	"lernova/internal/modules/assistant/usecase"
	apperrors "lernova/internal/platform/errors"
)

type call struct {
	system, prompt string
	temperature    float64
	maxTokens      int
}

type fakeCompleter struct {
	mu    sync.Mutex
	calls []call
	reply func(prompt string) (string, error)
}

func (f *fakeCompleter) Complete(_ context.Context, system, prompt string, temperature float64, maxTokens int) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{system: system, prompt: prompt, temperature: temperature, maxTokens: maxTokens})
	f.mu.Unlock()
	if f.reply == nil {
		return "  reply  ", nil
	}
	return f.reply(prompt)
}

type fakeSuggester struct {
	topics []string
	err    error
}

func (f *fakeSuggester) Suggest(_ context.Context, topic string) ([]domain.Suggestion, error) {
	f.topics = append(f.topics, topic)
	if f.err != nil {
		return nil, f.err
	}
	return []domain.Suggestion{{Title: "MDN Web Docs", URL: "https://developer.mozilla.org"}}, nil
}

func newInteractor(c *fakeCompleter, s assistantout.Suggester) assistantin.Usecase {
	return usecase.NewInteractor(service.NewAssistantService(c, nil), s, nil)
}

func TestChatAttachesSuggestionsForLearningQueries(t *testing.T) {
	t.Parallel()
	completer := &fakeCompleter{}
	suggester := &fakeSuggester{}
	uc := newInteractor(completer, suggester)

	out, err := uc.Chat(context.Background(), dto.ChatInput{Query: "teach me javascript", Context: "MDN page"})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if out.Text != "reply" || len(out.SuggestedWebsites) != 1 || out.SuggestedWebsites[0].Title != "MDN Web Docs" {
		t.Fatalf("unexpected reply %+v", out)
	}
	if len(suggester.topics) != 1 || suggester.topics[0] != "javascript" {
		t.Fatalf("unexpected suggestion topic %q", suggester.topics)
	}
	c := completer.calls[0]
	if c.system != domain.ChatSystem || c.temperature != 0.7 || c.maxTokens != 1024 {
		t.Fatalf("unexpected completion call %+v", c)
	}
	if !strings.HasPrefix(c.prompt, "Context from current page:\nMDN page") {
		t.Fatalf("page context missing from prompt %q", c.prompt)
	}

	plain, err := uc.Chat(context.Background(), dto.ChatInput{Query: "what time is it"})
	if err != nil || plain.SuggestedWebsites == nil || len(plain.SuggestedWebsites) != 0 {
		t.Fatalf("plain chat should carry an empty list: %+v %v", plain, err)
	}
	if completer.calls[1].prompt != "what time is it" {
		t.Fatalf("query without context should be sent as is, got %q", completer.calls[1].prompt)
	}
}

func TestChatIgnoresSuggestionFailures(t *testing.T) {
	t.Parallel()
	uc := newInteractor(&fakeCompleter{}, &fakeSuggester{err: errors.New("boom")})
	out, err := uc.Chat(context.Background(), dto.ChatInput{Query: "explain rust"})
	if err != nil || out.Text != "reply" || len(out.SuggestedWebsites) != 0 {
		t.Fatalf("unexpected result %+v %v", out, err)
	}

	noSuggester := newInteractor(&fakeCompleter{}, nil)
	if out, err := noSuggester.Chat(context.Background(), dto.ChatInput{Query: "explain rust"}); err != nil || len(out.SuggestedWebsites) != 0 {
		t.Fatalf("unexpected result without suggester %+v %v", out, err)
	}
}

func TestSummarizeCombinesLeadingChunks(t *testing.T) {
	t.Parallel()
	completer := &fakeCompleter{reply: func(prompt string) (string, error) {
		// Chunks overlap, so name each one after the last marker it holds.
		for _, marker := range []string{"DELTA", "CHARLIE", "BRAVO", "ALPHA"} {
			if strings.Contains(prompt, marker) && !strings.Contains(prompt, "part-") {
				return "part-" + marker, nil
			}
		}
		return "final", nil
	}}
	uc := newInteractor(completer, nil)

	para := strings.Repeat("filler ", 500)
	content := strings.Join([]string{para + "ALPHA", para + "BRAVO", para + "CHARLIE", para + "DELTA"}, "\n\n")
	out, err := uc.Summarize(context.Background(), dto.SummarizeInput{Content: content})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if out.Text != "final" {
		t.Fatalf("unexpected summary %q", out.Text)
	}
	if len(completer.calls) != 4 {
		t.Fatalf("expected 3 chunk calls and 1 combine call, got %d", len(completer.calls))
	}
	last := completer.calls[3]
	for _, part := range []string{"part-ALPHA", "part-BRAVO", "part-CHARLIE"} {
		if !strings.Contains(last.prompt, part) {
			t.Fatalf("combine prompt misses %s: %q", part, last.prompt)
		}
	}
	if strings.Contains(last.prompt, "DELTA") {
		t.Fatalf("only the leading chunks should be summarized")
	}
	if last.system != domain.SummarySystem {
		t.Fatalf("unexpected system prompt %q", last.system)
	}
}

func TestSummarizeShortContentIsOneCall(t *testing.T) {
	t.Parallel()
	completer := &fakeCompleter{}
	uc := newInteractor(completer, nil)
	if _, err := uc.Summarize(context.Background(), dto.SummarizeInput{Content: "a short page"}); err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if len(completer.calls) != 1 || !strings.Contains(completer.calls[0].prompt, "a short page") {
		t.Fatalf("unexpected calls %+v", completer.calls)
	}
	if _, err := uc.Summarize(context.Background(), dto.SummarizeInput{Content: "  "}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("blank content should be invalid, got %v", err)
	}
}

func TestSummarizeSurfacesChunkErrors(t *testing.T) {
	t.Parallel()
	completer := &fakeCompleter{reply: func(prompt string) (string, error) {
		if strings.Contains(prompt, "BRAVO") {
			return "", errors.New("rate limited")
		}
		return "ok", nil
	}}
	uc := newInteractor(completer, nil)
	para := strings.Repeat("filler ", 700)
	_, err := uc.Summarize(context.Background(), dto.SummarizeInput{Content: para + "ALPHA\n\n" + para + "BRAVO"})
	if err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("expected chunk error, got %v", err)
	}
}

func TestAskUsesQuestionPrompt(t *testing.T) {
	t.Parallel()
	completer := &fakeCompleter{}
	uc := newInteractor(completer, nil)
	out, err := uc.Ask(context.Background(), dto.QuestionInput{Question: "who designed Go?", Context: "Go was designed at Google."})
	if err != nil || out.Text != "reply" {
		t.Fatalf("ask: %+v %v", out, err)
	}
	c := completer.calls[0]
	if c.system != domain.QuestionSystem || !strings.Contains(c.prompt, "Question: who designed Go?") {
		t.Fatalf("unexpected call %+v", c)
	}
	if _, err := uc.Ask(context.Background(), dto.QuestionInput{Context: "x"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("blank question should be invalid, got %v", err)
	}
}

func TestHighlightParsesReply(t *testing.T) {
	t.Parallel()
	completer := &fakeCompleter{reply: func(string) (string, error) {
		return `{"important_ids": [0, 2]}`, nil
	}}
	uc := newInteractor(completer, nil)
	out, err := uc.Highlight(context.Background(), dto.HighlightInput{
		Topic:    "goroutines",
		PageURL:  "https://go.dev/tour",
		Elements: []dto.ElementInput{{ID: 0, Tag: "h1", Text: "Concurrency"}, {ID: 1, Tag: "p", Text: "Footer"}, {ID: 2, Tag: "p", Text: "go f()"}},
	})
	if err != nil {
		t.Fatalf("highlight: %v", err)
	}
	if out.Count != 2 || out.ImportantIDs[1] != 2 || out.Topic != "goroutines" {
		t.Fatalf("unexpected output %+v", out)
	}
	if !strings.Contains(completer.calls[0].prompt, "Analyzing webpage: https://go.dev/tour") {
		t.Fatalf("page url missing from prompt")
	}

	empty, err := uc.Highlight(context.Background(), dto.HighlightInput{Topic: "goroutines"})
	if err != nil || empty.Count != 0 || len(completer.calls) != 1 {
		t.Fatalf("no elements should skip the oracle: %+v %v", empty, err)
	}
	if _, err := uc.Highlight(context.Background(), dto.HighlightInput{}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("blank topic should be invalid, got %v", err)
	}
}

func TestSuggestWebsites(t *testing.T) {
	t.Parallel()
	uc := newInteractor(&fakeCompleter{}, &fakeSuggester{})
	sites, err := uc.SuggestWebsites(context.Background(), " python ")
	if err != nil || len(sites) != 1 {
		t.Fatalf("unexpected suggestions %+v %v", sites, err)
	}
	if _, err := uc.SuggestWebsites(context.Background(), ""); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("blank topic should be invalid, got %v", err)
	}
}
