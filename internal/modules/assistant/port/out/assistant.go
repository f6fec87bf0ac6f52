package out

import (
	"context"

	"lernova/internal/modules/assistant/domain"
)

// Completer produces free-text completions for the assistant.
type Completer interface {
	Complete(ctx context.Context, system, prompt string, temperature float64, maxTokens int) (string, error)
}

// Suggester lists learning sites for a topic.
type Suggester interface {
	Suggest(ctx context.Context, topic string) ([]domain.Suggestion, error)
}
