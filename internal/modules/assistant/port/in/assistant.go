package in

import (
	"context"

	"lernova/internal/modules/assistant/dto"
)

type Usecase interface {
	Chat(ctx context.Context, input dto.ChatInput) (dto.ReplyOutput, error)
	Summarize(ctx context.Context, input dto.SummarizeInput) (dto.ReplyOutput, error)
	Ask(ctx context.Context, input dto.QuestionInput) (dto.ReplyOutput, error)
	Highlight(ctx context.Context, input dto.HighlightInput) (dto.HighlightOutput, error)
	SuggestWebsites(ctx context.Context, topic string) ([]dto.SuggestionOutput, error)
}
