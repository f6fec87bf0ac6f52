package usecase

import (
	"context"

	"lernova/internal/modules/settings/domain"
	"lernova/internal/modules/settings/dto"
	settingsin "lernova/internal/modules/settings/port/in"
	"lernova/internal/modules/settings/service"
)

type Interactor struct {
	svc *service.SettingsService
}

func NewInteractor(svc *service.SettingsService) settingsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Get(ctx context.Context, userID string) (dto.SettingsOutput, error) {
	settings, err := i.svc.Get(ctx, userID)
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	return toOutput(settings), nil
}

func (i *Interactor) Update(ctx context.Context, input dto.UpdateInput) (dto.SettingsOutput, error) {
	settings, err := i.svc.Update(ctx, input.UserID, domain.Patch{
		FocusModeEnabled: input.FocusModeEnabled,
		FocusModeStrict:  input.FocusModeStrict,
	})
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	return toOutput(settings), nil
}

func (i *Interactor) StrictMode(ctx context.Context, userID string) (bool, error) {
	settings, err := i.svc.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	return settings.FocusModeStrict, nil
}

func toOutput(s domain.Settings) dto.SettingsOutput {
	return dto.SettingsOutput{
		UserID:           s.UserID,
		FocusModeEnabled: s.FocusModeEnabled,
		FocusModeStrict:  s.FocusModeStrict,
		UpdatedAt:        s.UpdatedAt,
	}
}
