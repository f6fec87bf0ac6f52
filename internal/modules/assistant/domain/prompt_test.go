package domain_test

import (
	"strings"
	"testing"

	"lernova/internal/modules/assistant/domain"
)

func TestChatPromptOnlyWrapsWithContext(t *testing.T) {
	t.Parallel()
	if got := domain.ChatPrompt("what is a goroutine?", " "); got != "what is a goroutine?" {
		t.Fatalf("bare query expected, got %q", got)
	}
	got := domain.ChatPrompt("what is this?", "Go tour page")
	if got != "Context from current page:\nGo tour page\n\nUser: what is this?\n\nAssistant:" {
		t.Fatalf("unexpected prompt %q", got)
	}
}

func TestQuestionAndSummaryPrompts(t *testing.T) {
	t.Parallel()
	q := domain.QuestionPrompt("who wrote it?", "ctx")
	if !strings.Contains(q, "Context:\nctx\n\nQuestion: who wrote it?\n\nAnswer:") {
		t.Fatalf("unexpected question prompt %q", q)
	}
	if s := domain.SummaryPrompt("body"); !strings.HasSuffix(s, "\n\nbody\n\nSummary:") {
		t.Fatalf("unexpected summary prompt %q", s)
	}
}

func TestLeadingContextKeepsThreeChunks(t *testing.T) {
	t.Parallel()
	para := strings.Repeat("x", 3000)
	text := strings.Join([]string{para + "A", para + "B", para + "C", para + "D", para + "E"}, "\n\n")
	got := domain.LeadingContext(text)
	if strings.Contains(got, "D") || strings.Contains(got, "E") || !strings.Contains(got, "C") {
		t.Fatalf("expected only the first three chunks")
	}
}

func TestLearningQueries(t *testing.T) {
	t.Parallel()
	for _, q := range []string{"Teach me Python", "explain calculus", "tell me ABOUT rust", "best course for go"} {
		if !domain.IsLearningQuery(q) {
			t.Fatalf("%q should be a learning query", q)
		}
	}
	if domain.IsLearningQuery("what time is it") {
		t.Fatalf("plain chat should not be a learning query")
	}
	if got := domain.SuggestionTopic("learn about quantum physics"); got != "quantum physics" {
		t.Fatalf("unexpected topic %q", got)
	}
}
