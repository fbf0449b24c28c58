package in

import (
	"context"

	"focusflow/internal/modules/drill/dto"
)

type Usecase interface {
	GetDrill(ctx context.Context, id string) (dto.DrillOutput, error)
	ListDrills(ctx context.Context) ([]dto.DrillOutput, error)
}
