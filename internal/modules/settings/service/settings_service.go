package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lernova/internal/modules/settings/domain"
	settingsout "lernova/internal/modules/settings/port/out"
	"lernova/internal/platform/clock"
	apperrors "lernova/internal/platform/errors"
)

type SettingsService struct {
	clock clock.Clock
	store settingsout.Store
}

func NewSettingsService(clock clock.Clock, store settingsout.Store) *SettingsService {
	return &SettingsService{clock: clock, store: store}
}

// Get returns the user's settings, creating the default record on first read.
func (s *SettingsService) Get(ctx context.Context, userID string) (domain.Settings, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.Settings{}, fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}
	settings, err := s.store.Load(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return domain.Settings{}, err
	}
	if err := s.store.Create(ctx, domain.Defaults(userID, s.clock.Now())); err != nil {
		return domain.Settings{}, err
	}
	return s.store.Load(ctx, userID)
}

// Update applies patch column by column; fields left unset keep whatever
// value is stored at write time.
func (s *SettingsService) Update(ctx context.Context, userID string, patch domain.Patch) (domain.Settings, error) {
	if patch.Empty() {
		return domain.Settings{}, fmt.Errorf("%w: nothing to update", apperrors.ErrInvalidInput)
	}
	userID = strings.TrimSpace(userID)
	if err := (domain.Settings{UserID: userID}).Validate(); err != nil {
		return domain.Settings{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return s.store.Patch(ctx, userID, patch, s.clock.Now())
}
