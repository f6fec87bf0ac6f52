package domain

import (
	"fmt"
	"strings"
	"time"
)

// Settings is the per-user preference record consulted by focus mode.
type Settings struct {
	UserID           string
	FocusModeEnabled bool
	FocusModeStrict  bool
	UpdatedAt        time.Time
}

func Defaults(userID string, now time.Time) Settings {
	return Settings{UserID: userID, UpdatedAt: now}
}

func (s Settings) Validate() error {
	if strings.TrimSpace(s.UserID) == "" {
		return fmt.Errorf("user id is required")
	}
	return nil
}

// Patch changes only the fields that are set; the store applies it column by column.
type Patch struct {
	FocusModeEnabled *bool
	FocusModeStrict  *bool
}

func (p Patch) Empty() bool {
	return p.FocusModeEnabled == nil && p.FocusModeStrict == nil
}
