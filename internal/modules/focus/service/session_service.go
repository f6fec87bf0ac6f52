package service

import (
	"context"
	"fmt"
	"strings"

	"lernova/internal/modules/focus/domain"
	focusout "lernova/internal/modules/focus/port/out"
	"lernova/internal/platform/clock"
	apperrors "lernova/internal/platform/errors"
	"lernova/internal/platform/id"
	"lernova/internal/platform/tx"
)

const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
)

type SessionService struct {
	clock clock.Clock
	idGen id.Generator
	store focusout.SessionStore
	tx    tx.Manager
}

func NewSessionService(clock clock.Clock, idGen id.Generator, store focusout.SessionStore, txm tx.Manager) *SessionService {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	return &SessionService{clock: clock, idGen: idGen, store: store, tx: txm}
}

// Start replaces the user's active session with a new one. Starts for the
// same user are serialized so two sessions are never active together.
func (s *SessionService) Start(ctx context.Context, userID, topic, description string, keywords, allowedDomains []string) (domain.Session, error) {
	session := domain.Session{
		ID:             s.idGen.New(),
		UserID:         strings.TrimSpace(userID),
		Topic:          strings.TrimSpace(topic),
		Description:    strings.TrimSpace(description),
		Keywords:       domain.CleanList(keywords),
		AllowedDomains: domain.CleanList(allowedDomains),
		BlockedURLs:    []string{},
		Active:         true,
	}
	if err := session.Validate(); err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}

	err := s.tx.Within(ctx, session.UserID, func(ctx context.Context) error {
		now := s.clock.Now()
		session.CreatedAt = now
		return s.store.Start(ctx, session, now)
	})
	if err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

func (s *SessionService) Active(ctx context.Context, userID string) (domain.Session, error) {
	return s.store.Active(ctx, userID)
}

func (s *SessionService) Get(ctx context.Context, sessionID string) (domain.Session, error) {
	return s.store.Get(ctx, sessionID)
}

func (s *SessionService) RecordCheck(ctx context.Context, sessionID, url string, allowed bool) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("%w: session id is required", apperrors.ErrInvalidInput)
	}
	return s.store.RecordCheck(ctx, sessionID, url, allowed)
}

// End is idempotent. The bool reports whether this call did the ending; the
// returned session is re-read so its counters are final.
func (s *SessionService) End(ctx context.Context, sessionID string) (domain.Session, bool, error) {
	ended, err := s.store.End(ctx, sessionID, s.clock.Now())
	if err != nil {
		return domain.Session{}, false, err
	}
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return domain.Session{}, false, err
	}
	return session, ended, nil
}

func (s *SessionService) History(ctx context.Context, userID string, limit int) ([]domain.Session, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	return s.store.History(ctx, userID, limit)
}
