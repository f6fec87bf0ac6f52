package in

import (
	"context"

	oracledto "lernova/internal/modules/oracle/dto"
	oraclein "lernova/internal/modules/oracle/port/in"
)

type CLIHandler struct {
	usecase oraclein.Usecase
}

func NewCLIHandler(usecase oraclein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Ping(ctx context.Context) (oracledto.PingOutput, error) {
	return h.usecase.Ping(ctx)
}

func (h CLIHandler) Ask(ctx context.Context, system, prompt string, temperature float64, maxTokens int) (oracledto.CompleteOutput, error) {
	return h.usecase.Complete(ctx, oracledto.CompleteInput{System: system, Prompt: prompt, Temperature: temperature, MaxTokens: maxTokens})
}
