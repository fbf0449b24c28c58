package in

import (
	"context"

	"focusflow/internal/modules/session/dto"
)

type Usecase interface {
	LogSession(ctx context.Context, input dto.LogInput) (dto.LogOutput, error)
	// ValidateFeedback checks the rating and sentiment of input without
	// writing anything.
	ValidateFeedback(input dto.LogInput) error
	ListSessions(ctx context.Context) ([]dto.SessionOutput, error)
	Reindex(ctx context.Context) (dto.ReindexOutput, error)
}

type PreferencesUsecase interface {
	GetPreferences(ctx context.Context) (dto.PreferencesOutput, error)
	SetTheme(ctx context.Context, theme string) (dto.PreferencesOutput, error)
	ToggleTheme(ctx context.Context) (dto.PreferencesOutput, error)
	SetEnvironment(ctx context.Context, environment string) (dto.PreferencesOutput, error)
	CycleEnvironment(ctx context.Context) (dto.PreferencesOutput, error)
	SetMusic(ctx context.Context, enabled bool) (dto.PreferencesOutput, error)
	ToggleMusic(ctx context.Context) (dto.PreferencesOutput, error)
	SetBrainViz(ctx context.Context, enabled bool) (dto.PreferencesOutput, error)
	ToggleBrainViz(ctx context.Context) (dto.PreferencesOutput, error)
}
