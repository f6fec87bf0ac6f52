package in

import (
	"context"

	"lernova/internal/modules/oracle/dto"
)

type Usecase interface {
	Complete(ctx context.Context, input dto.CompleteInput) (dto.CompleteOutput, error)
	Ping(ctx context.Context) (dto.PingOutput, error)
}
