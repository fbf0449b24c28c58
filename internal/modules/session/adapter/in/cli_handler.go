package in

import (
	"context"

	sessiondto "focusflow/internal/modules/session/dto"
	sessionin "focusflow/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
	prefs   sessionin.PreferencesUsecase
}

func NewCLIHandler(usecase sessionin.Usecase, prefs sessionin.PreferencesUsecase) CLIHandler {
	return CLIHandler{usecase: usecase, prefs: prefs}
}

func (h CLIHandler) List(ctx context.Context) ([]sessiondto.SessionOutput, error) {
	return h.usecase.ListSessions(ctx)
}

func (h CLIHandler) Reindex(ctx context.Context) (sessiondto.ReindexOutput, error) {
	return h.usecase.Reindex(ctx)
}

func (h CLIHandler) Preferences(ctx context.Context) (sessiondto.PreferencesOutput, error) {
	return h.prefs.GetPreferences(ctx)
}

// SetTheme toggles when theme is empty.
func (h CLIHandler) SetTheme(ctx context.Context, theme string) (sessiondto.PreferencesOutput, error) {
	if theme == "" {
		return h.prefs.ToggleTheme(ctx)
	}
	return h.prefs.SetTheme(ctx, theme)
}

// SetEnvironment advances the cycle when environment is empty.
func (h CLIHandler) SetEnvironment(ctx context.Context, environment string) (sessiondto.PreferencesOutput, error) {
	if environment == "" {
		return h.prefs.CycleEnvironment(ctx)
	}
	return h.prefs.SetEnvironment(ctx, environment)
}

func (h CLIHandler) SetMusic(ctx context.Context, enabled *bool) (sessiondto.PreferencesOutput, error) {
	if enabled == nil {
		return h.prefs.ToggleMusic(ctx)
	}
	return h.prefs.SetMusic(ctx, *enabled)
}

func (h CLIHandler) SetBrainViz(ctx context.Context, enabled *bool) (sessiondto.PreferencesOutput, error) {
	if enabled == nil {
		return h.prefs.ToggleBrainViz(ctx)
	}
	return h.prefs.SetBrainViz(ctx, *enabled)
}
