package in

import (
	"context"

	progressiondto "focusflow/internal/modules/progression/dto"
	progressionin "focusflow/internal/modules/progression/port/in"
)

type CLIHandler struct {
	usecase progressionin.Usecase
}

func NewCLIHandler(usecase progressionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Stats(ctx context.Context) (progressiondto.StatsOutput, error) {
	return h.usecase.Stats(ctx)
}
