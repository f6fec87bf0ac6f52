package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"lernova/internal/modules/oracle/domain"
	oracleout "lernova/internal/modules/oracle/port/out"
	"lernova/internal/platform/clock"
	apperrors "lernova/internal/platform/errors"
)

const (
	pingSystem = "You are a health check. Answer with one word."
	pingPrompt = "Reply with the single word PONG."
)

type OracleService struct {
	provider oracleout.Provider
	clock    clock.Clock
	logger   hclog.Logger
	timeout  time.Duration
}

func NewOracleService(provider oracleout.Provider, clock clock.Clock, logger hclog.Logger, timeout time.Duration) *OracleService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &OracleService{provider: provider, clock: clock, logger: logger.Named("oracle"), timeout: timeout}
}

// Complete runs one bounded provider call. A provider panic is returned as an error.
func (s *OracleService) Complete(ctx context.Context, req domain.CompletionRequest) (text string, latency time.Duration, err error) {
	if err := req.Validate(); err != nil {
		return "", 0, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if s.provider == nil {
		return "", 0, domain.ErrProviderUnavailable
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	started := s.clock.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("oracle provider panic: %v", r)
		}
		latency = clock.Since(s.clock, started)
		if err != nil {
			s.logger.Warn("completion failed", "latency", latency, "error", err)
			return
		}
		s.logger.Debug("completion done", "latency", latency, "chars", len(text))
	}()

	text, err = s.provider.Complete(ctx, req)
	if err != nil {
		return "", 0, fmt.Errorf("complete: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", 0, domain.ErrEmptyCompletion
	}
	return text, 0, nil
}

func (s *OracleService) Metadata(ctx context.Context) (domain.Metadata, error) {
	if s.provider == nil {
		return domain.Metadata{}, domain.ErrProviderUnavailable
	}
	return s.provider.Metadata(ctx)
}

// Ping sends a trivial prompt and reports who answered and how fast.
func (s *OracleService) Ping(ctx context.Context) (domain.Metadata, string, time.Duration, error) {
	meta, err := s.Metadata(ctx)
	if err != nil {
		return domain.Metadata{}, "", 0, err
	}
	reply, latency, err := s.Complete(ctx, domain.CompletionRequest{
		System:      pingSystem,
		Prompt:      pingPrompt,
		Temperature: 0,
		MaxTokens:   5,
	})
	if err != nil {
		return meta, "", latency, err
	}
	return meta, reply, latency, nil
}
