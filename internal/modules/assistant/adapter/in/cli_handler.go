package in

import (
	"context"

	assistantdto "lernova/internal/modules/assistant/dto"
	assistantin "lernova/internal/modules/assistant/port/in"
)

type CLIHandler struct {
	usecase assistantin.Usecase
}

func NewCLIHandler(usecase assistantin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Chat(ctx context.Context, query, pageContext string) (assistantdto.ReplyOutput, error) {
	return h.usecase.Chat(ctx, assistantdto.ChatInput{Query: query, Context: pageContext})
}

func (h CLIHandler) Summarize(ctx context.Context, content, url string) (assistantdto.ReplyOutput, error) {
	return h.usecase.Summarize(ctx, assistantdto.SummarizeInput{Content: content, URL: url})
}

func (h CLIHandler) Ask(ctx context.Context, question, pageContext string) (assistantdto.ReplyOutput, error) {
	return h.usecase.Ask(ctx, assistantdto.QuestionInput{Question: question, Context: pageContext})
}
