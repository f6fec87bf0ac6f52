package out

import (
	"context"
	"time"

	"lernova/internal/modules/focus/domain"
)

// SessionStore persists focus sessions. Every method is atomic on its own.
type SessionStore interface {
	// Start ends any active session of session.UserID at now and inserts session.
	Start(ctx context.Context, session domain.Session, now time.Time) error
	Active(ctx context.Context, userID string) (domain.Session, error)
	Get(ctx context.Context, sessionID string) (domain.Session, error)
	// RecordCheck bumps the counters in one statement and journals blocked URLs.
	RecordCheck(ctx context.Context, sessionID, url string, allowed bool) error
	// End reports whether this call ended the session; an already ended session is not an error.
	End(ctx context.Context, sessionID string, now time.Time) (bool, error)
	History(ctx context.Context, userID string, limit int) ([]domain.Session, error)
}

// Oracle produces free-text completions for the classifier.
type Oracle interface {
	Complete(ctx context.Context, system, prompt string, temperature float64, maxTokens int) (string, error)
}

type StrictModeSource interface {
	StrictMode(ctx context.Context, userID string) (bool, error)
}

type ReportStore interface {
	Save(ctx context.Context, session domain.Session) (string, error)
}
