package dto

import "time"

type SettingsOutput struct {
	UserID           string    `json:"user_id"`
	FocusModeEnabled bool      `json:"focus_mode_enabled"`
	FocusModeStrict  bool      `json:"focus_mode_strict"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type UpdateInput struct {
	UserID           string `json:"-"`
	FocusModeEnabled *bool  `json:"focus_mode_enabled,omitempty"`
	FocusModeStrict  *bool  `json:"focus_mode_strict,omitempty"`
}
