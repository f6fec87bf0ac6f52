package out

import (
	"context"

	focusout "lernova/internal/modules/focus/port/out"
	settingsin "lernova/internal/modules/settings/port/in"
)

type SettingsAdapter struct {
	settings settingsin.Usecase
}

func NewSettingsAdapter(settings settingsin.Usecase) focusout.StrictModeSource {
	return &SettingsAdapter{settings: settings}
}

func (a *SettingsAdapter) StrictMode(ctx context.Context, userID string) (bool, error) {
	return a.settings.StrictMode(ctx, userID)
}
