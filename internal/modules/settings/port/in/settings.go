package in

import (
	"context"

	"lernova/internal/modules/settings/dto"
)

type Usecase interface {
	Get(ctx context.Context, userID string) (dto.SettingsOutput, error)
	Update(ctx context.Context, input dto.UpdateInput) (dto.SettingsOutput, error)
	StrictMode(ctx context.Context, userID string) (bool, error)
}
