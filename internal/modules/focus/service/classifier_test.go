package service_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"lernova/internal/modules/focus/domain"
	"lernova/internal/modules/focus/service"
)

type fakeOracle struct {
	mu       sync.Mutex
	reply    string
	err      error
	panic    bool
	delay    time.Duration
	calls    int
	inFlight int
	maxSeen  int
	prompts  []string
	temp     float64
	tokens   int
}

func (f *fakeOracle) Complete(ctx context.Context, system, prompt string, temperature float64, maxTokens int) (string, error) {
	f.mu.Lock()
	f.calls++
	f.inFlight++
	if f.inFlight > f.maxSeen {
		f.maxSeen = f.inFlight
	}
	f.prompts = append(f.prompts, prompt)
	f.temp, f.tokens = temperature, maxTokens
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	if f.panic {
		panic("provider exploded")
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.reply, f.err
}

func query(url string, strict bool) domain.RelevanceQuery {
	return domain.RelevanceQuery{URL: url, Topic: "Go concurrency", Keywords: []string{"golang"}, StrictMode: strict}
}

func TestCheckRelevanceParsesOracleReply(t *testing.T) {
	t.Parallel()
	oracle := &fakeOracle{reply: "DECISION: ALLOW\nCONFIDENCE: 87\nREASON: directly relevant"}
	classifier := service.NewClassifier(oracle, nil, time.Second, 2, time.Second)

	verdict := classifier.CheckRelevance(context.Background(), query("https://go.dev/blog?x=1&y=2", false))
	if !verdict.Allowed || verdict.Confidence != 87 || verdict.Reason != "directly relevant" {
		t.Fatalf("unexpected verdict: %+v", verdict)
	}
	if verdict.Domain != "go.dev" || verdict.URL != "https://go.dev/blog?x=1&y=2" {
		t.Fatalf("verdict should carry url and domain: %+v", verdict)
	}
	if oracle.temp != 0.3 || oracle.tokens != 150 {
		t.Fatalf("unexpected sampling parameters %.2f/%d", oracle.temp, oracle.tokens)
	}
	if !strings.Contains(oracle.prompts[0], "Domain: go.dev") {
		t.Fatalf("prompt should include the normalized domain")
	}
}

func TestCheckRelevanceFallsBackOnFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cases := []struct {
		name   string
		oracle *fakeOracle
	}{
		{name: "error", oracle: &fakeOracle{err: errors.New("503 service unavailable")}},
		{name: "panic", oracle: &fakeOracle{panic: true}},
		{name: "timeout", oracle: &fakeOracle{reply: "DECISION: ALLOW", delay: time.Second}},
	}
	for _, tc := range cases {
		classifier := service.NewClassifier(tc.oracle, nil, 30*time.Millisecond, 1, time.Second)

		lenient := classifier.CheckRelevance(ctx, query("https://example.com", false))
		if !lenient.Allowed || lenient.Confidence != 0 || !strings.HasPrefix(lenient.Reason, "error during check:") {
			t.Fatalf("%s: lenient fallback should allow with zero confidence: %+v", tc.name, lenient)
		}
		strict := classifier.CheckRelevance(ctx, query("https://example.com", true))
		if strict.Allowed || strict.Confidence != 0 {
			t.Fatalf("%s: strict fallback should block with zero confidence: %+v", tc.name, strict)
		}
	}

	unconfigured := service.NewClassifier(nil, nil, time.Second, 1, time.Second)
	if v := unconfigured.CheckRelevance(ctx, query("https://example.com", true)); v.Allowed {
		t.Fatalf("missing oracle in strict mode should block")
	}
}

func TestCheckRelevanceDefaultsOnGarbage(t *testing.T) {
	t.Parallel()
	classifier := service.NewClassifier(&fakeOracle{reply: "I think maybe?"}, nil, time.Second, 1, time.Second)
	v := classifier.CheckRelevance(context.Background(), query("https://example.com", false))
	if v.Allowed || v.Confidence != 50 || v.Reason != "unable to determine relevance" {
		t.Fatalf("unexpected verdict: %+v", v)
	}
}

func TestBatchCheckDeduplicatesAndBoundsConcurrency(t *testing.T) {
	t.Parallel()
	oracle := &fakeOracle{reply: "DECISION: BLOCK\nCONFIDENCE: 70\nREASON: off topic", delay: 20 * time.Millisecond}
	classifier := service.NewClassifier(oracle, nil, time.Second, 2, 5*time.Second)

	urls := []string{"https://a.example", "https://b.example", "https://a.example", " ", "https://c.example", "https://d.example"}
	results, partial := classifier.BatchCheck(context.Background(), urls, query("", false))
	if partial {
		t.Fatalf("batch should complete")
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 distinct results, got %d", len(results))
	}
	if oracle.calls != 4 {
		t.Fatalf("duplicates must collapse into one oracle call each, got %d calls", oracle.calls)
	}
	if oracle.maxSeen > 2 {
		t.Fatalf("concurrency limit exceeded: %d in flight", oracle.maxSeen)
	}
	if v := results["https://b.example"]; v.URL != "https://b.example" || v.Allowed || v.Confidence != 70 {
		t.Fatalf("unexpected verdict for b: %+v", v)
	}
}

func TestBatchCheckReturnsPartialResultsAtDeadline(t *testing.T) {
	t.Parallel()
	oracle := &fakeOracle{reply: "DECISION: ALLOW", delay: 300 * time.Millisecond}
	classifier := service.NewClassifier(oracle, nil, time.Second, 1, 50*time.Millisecond)

	results, partial := classifier.BatchCheck(context.Background(), []string{"https://a.example", "https://b.example"}, query("", false))
	if !partial {
		t.Fatalf("expected partial batch")
	}
	if len(results) != 0 {
		t.Fatalf("unfinished urls must be left out, got %+v", results)
	}
}

func TestRunBatchPropagatesCheckErrors(t *testing.T) {
	t.Parallel()
	classifier := service.NewClassifier(&fakeOracle{}, nil, time.Second, 2, time.Second)
	_, _, err := classifier.RunBatch(context.Background(), []string{"https://a.example"}, func(context.Context, string) (domain.Verdict, bool, error) {
		return domain.Verdict{}, false, errors.New("store offline")
	})
	if err == nil || !strings.Contains(err.Error(), "store offline") {
		t.Fatalf("expected check error, got %v", err)
	}
}
