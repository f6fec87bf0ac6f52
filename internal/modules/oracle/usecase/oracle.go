package usecase

import (
	"context"

	"lernova/internal/modules/oracle/domain"
	"lernova/internal/modules/oracle/dto"
	oraclein "lernova/internal/modules/oracle/port/in"
	"lernova/internal/modules/oracle/service"
)

type Interactor struct {
	svc *service.OracleService
}

func NewInteractor(svc *service.OracleService) oraclein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Complete(ctx context.Context, input dto.CompleteInput) (dto.CompleteOutput, error) {
	meta, err := i.svc.Metadata(ctx)
	if err != nil {
		return dto.CompleteOutput{}, err
	}
	text, latency, err := i.svc.Complete(ctx, domain.CompletionRequest{
		System:      input.System,
		Prompt:      input.Prompt,
		Temperature: input.Temperature,
		MaxTokens:   input.MaxTokens,
	})
	if err != nil {
		return dto.CompleteOutput{}, err
	}
	return dto.CompleteOutput{Text: text, Provider: meta.Name, Latency: latency}, nil
}

func (i *Interactor) Ping(ctx context.Context) (dto.PingOutput, error) {
	meta, reply, latency, err := i.svc.Ping(ctx)
	if err != nil {
		return dto.PingOutput{}, err
	}
	return dto.PingOutput{
		Provider: meta.Name,
		Version:  meta.Version,
		Model:    meta.Model,
		Reply:    reply,
		Latency:  latency,
	}, nil
}
