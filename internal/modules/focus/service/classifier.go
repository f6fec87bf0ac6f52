package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"lernova/internal/modules/focus/domain"
	focusout "lernova/internal/modules/focus/port/out"
)

// URLCheck classifies one URL of a batch. Returning ok=false leaves the URL
// out of the results.
type URLCheck func(ctx context.Context, url string) (verdict domain.Verdict, ok bool, err error)

// Classifier asks the oracle whether a URL fits the focus topic. It keeps no
// session state; every call carries its own query.
type Classifier struct {
	oracle       focusout.Oracle
	logger       hclog.Logger
	timeout      time.Duration
	concurrency  int
	batchTimeout time.Duration
}

func NewClassifier(oracle focusout.Oracle, logger hclog.Logger, timeout time.Duration, concurrency int, batchTimeout time.Duration) *Classifier {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Classifier{
		oracle:       oracle,
		logger:       logger.Named("classifier"),
		timeout:      timeout,
		concurrency:  concurrency,
		batchTimeout: batchTimeout,
	}
}

// CheckRelevance never fails. When the oracle errors, panics or times out the
// verdict falls open, or closed in strict mode, with zero confidence.
func (c *Classifier) CheckRelevance(ctx context.Context, q domain.RelevanceQuery) domain.Verdict {
	host := domain.ExtractDomain(q.URL)
	reply, err := c.complete(ctx, domain.BuildPrompt(q, host))
	if err != nil {
		c.logger.Warn("relevance check failed", "url", q.URL, "strict", q.StrictMode, "error", err)
		return domain.Verdict{
			URL:        q.URL,
			Domain:     host,
			Allowed:    !q.StrictMode,
			Confidence: 0,
			Reason:     "error during check: " + err.Error(),
		}
	}
	verdict := domain.ParseReply(reply)
	verdict.URL = q.URL
	verdict.Domain = host
	c.logger.Debug("relevance checked", "url", q.URL, "allowed", verdict.Allowed, "confidence", verdict.Confidence)
	return verdict
}

type completion struct {
	text string
	err  error
}

func (c *Classifier) complete(ctx context.Context, prompt string) (string, error) {
	if c.oracle == nil {
		return "", fmt.Errorf("oracle is not configured")
	}
	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	done := make(chan completion, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- completion{err: fmt.Errorf("oracle panic: %v", r)}
			}
		}()
		text, err := c.oracle.Complete(callCtx, domain.SystemPrompt, prompt, domain.ClassifierTemperature, domain.ClassifierMaxTokens)
		done <- completion{text: text, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return "", res.err
		}
		return res.text, nil
	case <-callCtx.Done():
		return "", fmt.Errorf("oracle call: %w", callCtx.Err())
	}
}

// BatchCheck classifies every distinct URL with the query's topic context.
// The second result reports whether the batch deadline cut it short.
func (c *Classifier) BatchCheck(ctx context.Context, urls []string, q domain.RelevanceQuery) (map[string]domain.Verdict, bool) {
	results, partial, _ := c.RunBatch(ctx, urls, func(ctx context.Context, url string) (domain.Verdict, bool, error) {
		query := q
		query.URL = url
		verdict := c.CheckRelevance(ctx, query)
		return verdict, ctx.Err() == nil, nil
	})
	return results, partial
}

// RunBatch runs check over the distinct, non-blank URLs on a bounded pool
// under the batch deadline. URLs not finished by the deadline are missing
// from the map and partial is true. An error from check aborts the batch.
func (c *Classifier) RunBatch(ctx context.Context, urls []string, check URLCheck) (map[string]domain.Verdict, bool, error) {
	distinct := distinctURLs(urls)
	results := make(map[string]domain.Verdict, len(distinct))
	if len(distinct) == 0 {
		return results, false, nil
	}

	batchCtx := ctx
	if c.batchTimeout > 0 {
		var cancel context.CancelFunc
		batchCtx, cancel = context.WithTimeout(ctx, c.batchTimeout)
		defer cancel()
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(batchCtx)
	g.SetLimit(c.concurrency)
	for _, url := range distinct {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			verdict, ok, err := check(gctx, url)
			if err != nil {
				return fmt.Errorf("check %s: %w", url, err)
			}
			if !ok {
				return nil
			}
			mu.Lock()
			results[url] = verdict
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, false, err
	}

	partial := len(results) < len(distinct)
	if partial {
		c.logger.Warn("batch check incomplete", "requested", len(distinct), "completed", len(results))
	}
	return results, partial, nil
}

func distinctURLs(urls []string) []string {
	out := make([]string, 0, len(urls))
	seen := make(map[string]struct{}, len(urls))
	for _, url := range urls {
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		if _, ok := seen[url]; ok {
			continue
		}
		seen[url] = struct{}{}
		out = append(out, url)
	}
	return out
}
