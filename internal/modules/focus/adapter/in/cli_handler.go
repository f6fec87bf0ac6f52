package in

import (
	"context"

	focusdto "lernova/internal/modules/focus/dto"
	focusin "lernova/internal/modules/focus/port/in"
)

type CLIHandler struct {
	usecase focusin.Usecase
}

func NewCLIHandler(usecase focusin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, userID, topic, description string, keywords, allowedDomains []string) (focusdto.StartOutput, error) {
	return h.usecase.StartSession(ctx, focusdto.StartInput{
		UserID:         userID,
		Topic:          topic,
		Description:    description,
		Keywords:       keywords,
		AllowedDomains: allowedDomains,
	})
}

func (h CLIHandler) Active(ctx context.Context, userID string) (focusdto.ActiveOutput, error) {
	return h.usecase.GetActive(ctx, userID)
}

func (h CLIHandler) Check(ctx context.Context, userID, url string, quick bool) (focusdto.CheckOutput, error) {
	return h.usecase.CheckURL(ctx, focusdto.CheckInput{UserID: userID, URL: url, UseQuickCheck: quick})
}

func (h CLIHandler) CheckBatch(ctx context.Context, userID string, urls []string) (focusdto.BatchCheckOutput, error) {
	return h.usecase.BatchCheckURLs(ctx, focusdto.BatchCheckInput{UserID: userID, URLs: urls})
}

func (h CLIHandler) End(ctx context.Context, userID string) (focusdto.EndOutput, error) {
	return h.usecase.EndSession(ctx, focusdto.EndInput{UserID: userID})
}

func (h CLIHandler) History(ctx context.Context, userID string, limit int) ([]focusdto.SessionOutput, error) {
	return h.usecase.History(ctx, focusdto.HistoryInput{UserID: userID, Limit: limit})
}

func (h CLIHandler) Suggest(ctx context.Context, topic string) ([]focusdto.SuggestionOutput, error) {
	return h.usecase.Suggest(ctx, topic)
}
