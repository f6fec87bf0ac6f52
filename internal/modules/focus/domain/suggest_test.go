package domain_test

import (
	"strings"
	"testing"

	"lernova/internal/modules/focus/domain"
)

func TestSuggestSitesPicksFamily(t *testing.T) {
	t.Parallel()
	got := domain.SuggestSites("learn about Python decorators")
	if len(got) != 5 || got[0].Title != "MDN Web Docs" {
		t.Fatalf("expected programming family, got %+v", got)
	}
	if got := domain.SuggestSites("Linear Algebra"); got[0].Title != "Khan Academy" {
		t.Fatalf("expected science family, got %+v", got)
	}
	if got := domain.SuggestSites("Spanish verbs"); got[0].Title != "Duolingo" {
		t.Fatalf("expected language family, got %+v", got)
	}
}

func TestSuggestSitesFallsBackToTopicLinks(t *testing.T) {
	t.Parallel()
	got := domain.SuggestSites("Roman history")
	if len(got) != 5 {
		t.Fatalf("expected five suggestions, got %d", len(got))
	}
	if got[0].URL != "https://en.wikipedia.org/wiki/Roman_history" {
		t.Fatalf("unexpected wikipedia link: %s", got[0].URL)
	}
	if !strings.HasSuffix(got[3].URL, "search_query=Roman+history+tutorial") {
		t.Fatalf("unexpected youtube link: %s", got[3].URL)
	}
	if len(domain.SuggestSites("   ")) != 0 {
		t.Fatalf("blank topic should have no suggestions")
	}
}
