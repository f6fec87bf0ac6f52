package out

import (
	"context"

	"lernova/internal/modules/oracle/domain"
)

// Provider is a completion backend. Implementations must honour ctx cancellation.
type Provider interface {
	Metadata(ctx context.Context) (domain.Metadata, error)
	Complete(ctx context.Context, req domain.CompletionRequest) (string, error)
	Close() error
}
