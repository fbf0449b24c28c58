package in

import (
	"context"

	"focusflow/internal/modules/progression/dto"
)

type Usecase interface {
	Stats(ctx context.Context) (dto.StatsOutput, error)
	Level(xp int) dto.LevelOutput
}
