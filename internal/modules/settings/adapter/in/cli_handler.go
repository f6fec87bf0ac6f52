package in

import (
	"context"

	settingsdto "lernova/internal/modules/settings/dto"
	settingsin "lernova/internal/modules/settings/port/in"
)

type CLIHandler struct {
	usecase settingsin.Usecase
}

func NewCLIHandler(usecase settingsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context, userID string) (settingsdto.SettingsOutput, error) {
	return h.usecase.Get(ctx, userID)
}

func (h CLIHandler) Set(ctx context.Context, userID string, enabled, strict *bool) (settingsdto.SettingsOutput, error) {
	return h.usecase.Update(ctx, settingsdto.UpdateInput{UserID: userID, FocusModeEnabled: enabled, FocusModeStrict: strict})
}
