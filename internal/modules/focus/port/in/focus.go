package in

import (
	"context"

	"lernova/internal/modules/focus/dto"
)

type Usecase interface {
	StartSession(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	GetActive(ctx context.Context, userID string) (dto.ActiveOutput, error)
	CheckURL(ctx context.Context, input dto.CheckInput) (dto.CheckOutput, error)
	BatchCheckURLs(ctx context.Context, input dto.BatchCheckInput) (dto.BatchCheckOutput, error)
	EndSession(ctx context.Context, input dto.EndInput) (dto.EndOutput, error)
	History(ctx context.Context, input dto.HistoryInput) ([]dto.SessionOutput, error)
	Suggest(ctx context.Context, topic string) ([]dto.SuggestionOutput, error)
}
