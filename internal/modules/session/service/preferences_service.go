package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"focusflow/internal/modules/session/domain"
	sessionout "focusflow/internal/modules/session/port/out"
)

type PreferencesService struct {
	store  sessionout.PreferencesStore
	logger *zap.Logger
}

func NewPreferencesService(store sessionout.PreferencesStore, logger *zap.Logger) *PreferencesService {
	return &PreferencesService{store: store, logger: logger}
}

// Current never fails; unreadable preferences degrade to defaults.
func (s *PreferencesService) Current(ctx context.Context) domain.Preferences {
	prefs, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("preferences unavailable, using defaults", zap.Error(err))
		return domain.DefaultPreferences()
	}
	return prefs
}

// Update loads the current record, applies mutate and persists the whole
// record in a single write.
func (s *PreferencesService) Update(ctx context.Context, mutate func(*domain.Preferences) error) (domain.Preferences, error) {
	prefs := s.Current(ctx)
	if err := mutate(&prefs); err != nil {
		return domain.Preferences{}, err
	}
	prefs = prefs.Normalize()
	if err := s.store.Save(ctx, prefs); err != nil {
		return domain.Preferences{}, fmt.Errorf("save preferences: %w", err)
	}
	return prefs, nil
}
