package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"focusflow/internal/modules/drill/domain"
	drillout "focusflow/internal/modules/drill/port/out"
)

// CatalogService is a read-only drill lookup. It is populated once by Load
// and never mutated afterwards.
type CatalogService struct {
	drills map[string]domain.Drill
	order  []string
}

func NewCatalogService(ctx context.Context, source drillout.DrillSource, logger *zap.Logger) *CatalogService {
	s := &CatalogService{drills: map[string]domain.Drill{}}
	for _, d := range domain.Builtins() {
		s.drills[d.ID] = d
	}
	if source != nil {
		custom, err := source.List(ctx)
		if err != nil {
			logger.Warn("custom drills unavailable, using builtins", zap.Error(err))
		}
		for _, d := range custom {
			if prev, ok := s.drills[d.ID]; ok && prev.Builtin {
				logger.Info("custom drill overrides builtin", zap.String("drill", d.ID))
			}
			s.drills[d.ID] = d
		}
	}
	for id := range s.drills {
		s.order = append(s.order, id)
	}
	sort.Slice(s.order, func(i, j int) bool {
		a, b := s.drills[s.order[i]], s.drills[s.order[j]]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return s
}

func (s *CatalogService) Lookup(id string) (domain.Drill, bool) {
	d, ok := s.drills[id]
	return d, ok
}

func (s *CatalogService) List() []domain.Drill {
	out := make([]domain.Drill, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.drills[id])
	}
	return out
}
