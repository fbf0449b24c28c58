package usecase

import (
	"context"

	"focusflow/internal/modules/session/domain"
	sessiondto "focusflow/internal/modules/session/dto"
	sessionin "focusflow/internal/modules/session/port/in"
	"focusflow/internal/modules/session/service"
)

type PreferencesInteractor struct {
	svc *service.PreferencesService
}

func NewPreferencesInteractor(svc *service.PreferencesService) sessionin.PreferencesUsecase {
	return &PreferencesInteractor{svc: svc}
}

func (i *PreferencesInteractor) GetPreferences(ctx context.Context) (sessiondto.PreferencesOutput, error) {
	return toPreferencesOutput(i.svc.Current(ctx)), nil
}

func (i *PreferencesInteractor) SetTheme(ctx context.Context, theme string) (sessiondto.PreferencesOutput, error) {
	parsed, err := domain.ParseTheme(theme)
	if err != nil {
		return sessiondto.PreferencesOutput{}, err
	}
	return i.update(ctx, func(p *domain.Preferences) { p.Theme = parsed })
}

func (i *PreferencesInteractor) ToggleTheme(ctx context.Context) (sessiondto.PreferencesOutput, error) {
	return i.update(ctx, func(p *domain.Preferences) { p.Theme = p.Theme.Toggle() })
}

func (i *PreferencesInteractor) SetEnvironment(ctx context.Context, environment string) (sessiondto.PreferencesOutput, error) {
	parsed, err := domain.ParseEnvironment(environment)
	if err != nil {
		return sessiondto.PreferencesOutput{}, err
	}
	return i.update(ctx, func(p *domain.Preferences) { p.Environment = parsed })
}

func (i *PreferencesInteractor) CycleEnvironment(ctx context.Context) (sessiondto.PreferencesOutput, error) {
	return i.update(ctx, func(p *domain.Preferences) { p.Environment = p.Environment.Next() })
}

func (i *PreferencesInteractor) SetMusic(ctx context.Context, enabled bool) (sessiondto.PreferencesOutput, error) {
	return i.update(ctx, func(p *domain.Preferences) { p.MusicEnabled = enabled })
}

func (i *PreferencesInteractor) ToggleMusic(ctx context.Context) (sessiondto.PreferencesOutput, error) {
	return i.update(ctx, func(p *domain.Preferences) { p.MusicEnabled = !p.MusicEnabled })
}

func (i *PreferencesInteractor) SetBrainViz(ctx context.Context, enabled bool) (sessiondto.PreferencesOutput, error) {
	return i.update(ctx, func(p *domain.Preferences) { p.BrainVizEnabled = enabled })
}

func (i *PreferencesInteractor) ToggleBrainViz(ctx context.Context) (sessiondto.PreferencesOutput, error) {
	return i.update(ctx, func(p *domain.Preferences) { p.BrainVizEnabled = !p.BrainVizEnabled })
}

func (i *PreferencesInteractor) update(ctx context.Context, mutate func(*domain.Preferences)) (sessiondto.PreferencesOutput, error) {
	prefs, err := i.svc.Update(ctx, func(p *domain.Preferences) error {
		mutate(p)
		return nil
	})
	if err != nil {
		return sessiondto.PreferencesOutput{}, err
	}
	return toPreferencesOutput(prefs), nil
}

func toPreferencesOutput(p domain.Preferences) sessiondto.PreferencesOutput {
	return sessiondto.PreferencesOutput{
		Theme:           string(p.Theme),
		Environment:     string(p.Environment),
		MusicEnabled:    p.MusicEnabled,
		BrainVizEnabled: p.BrainVizEnabled,
		TotalXP:         p.TotalXP,
	}
}
