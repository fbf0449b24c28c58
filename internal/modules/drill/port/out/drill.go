package out

import (
	"context"

	"focusflow/internal/modules/drill/domain"
)

// DrillSource supplies user-defined drills in addition to the builtins.
type DrillSource interface {
	List(ctx context.Context) ([]domain.Drill, error)
}
