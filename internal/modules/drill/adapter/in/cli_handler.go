package in

import (
	"context"

	"focusflow/internal/modules/drill/dto"
	drillin "focusflow/internal/modules/drill/port/in"
)

type CLIHandler struct {
	usecase drillin.Usecase
}

func NewCLIHandler(usecase drillin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) GetDrill(ctx context.Context, id string) (dto.DrillOutput, error) {
	return h.usecase.GetDrill(ctx, id)
}

func (h CLIHandler) ListDrills(ctx context.Context) ([]dto.DrillOutput, error) {
	return h.usecase.ListDrills(ctx)
}
