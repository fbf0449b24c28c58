package usecase

import (
	"context"

	"focusflow/internal/modules/drill/domain"
	"focusflow/internal/modules/drill/dto"
	drillin "focusflow/internal/modules/drill/port/in"
	"focusflow/internal/modules/drill/service"
	apperrors "focusflow/internal/platform/errors"
)

type Interactor struct {
	catalog *service.CatalogService
}

func NewInteractor(catalog *service.CatalogService) drillin.Usecase {
	return &Interactor{catalog: catalog}
}

func (i *Interactor) GetDrill(_ context.Context, id string) (dto.DrillOutput, error) {
	d, ok := i.catalog.Lookup(id)
	if !ok {
		return dto.DrillOutput{}, apperrors.ErrNotFound
	}
	return toOutput(d), nil
}

func (i *Interactor) ListDrills(_ context.Context) ([]dto.DrillOutput, error) {
	drills := i.catalog.List()
	out := make([]dto.DrillOutput, 0, len(drills))
	for _, d := range drills {
		out = append(out, toOutput(d))
	}
	return out, nil
}

func toOutput(d domain.Drill) dto.DrillOutput {
	cues := make([]dto.CueOutput, 0, len(d.Cues))
	for _, c := range d.Cues {
		cues = append(cues, dto.CueOutput{Offset: c.Offset, Text: c.Text})
	}
	return dto.DrillOutput{ID: d.ID, Name: d.Name, Description: d.Description, Builtin: d.Builtin, Cues: cues}
}
