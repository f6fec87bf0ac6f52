package out

import (
	"context"
	"time"

	"lernova/internal/modules/settings/domain"
)

type Store interface {
	// Load returns apperrors.ErrNotFound when the user has no record yet.
	Load(ctx context.Context, userID string) (domain.Settings, error)
	// Create inserts settings unless the user already has a record.
	Create(ctx context.Context, settings domain.Settings) error
	// Patch writes only the fields set in patch, creating the default record
	// first when needed, and returns the stored result.
	Patch(ctx context.Context, userID string, patch domain.Patch, now time.Time) (domain.Settings, error)
}
