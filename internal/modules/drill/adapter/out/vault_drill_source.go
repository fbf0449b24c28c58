package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"focusflow/internal/modules/drill/domain"
	drillout "focusflow/internal/modules/drill/port/out"
)

type VaultDrillSource struct {
	dir    string
	logger *zap.Logger
}

func NewVaultDrillSource(vaultPath string, logger *zap.Logger) drillout.DrillSource {
	return &VaultDrillSource{dir: filepath.Join(vaultPath, "drills"), logger: logger}
}

type drillFile struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Cues        []cueFile `yaml:"cues"`
}

type cueFile struct {
	T    int    `yaml:"t"`
	Text string `yaml:"text"`
}

// List decodes every drills/*.yaml file. Files that fail to parse or
// validate are logged and skipped.
func (s *VaultDrillSource) List(_ context.Context) ([]domain.Drill, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("glob drill files: %w", err)
	}
	sort.Strings(matches)

	out := make([]domain.Drill, 0, len(matches))
	for _, path := range matches {
		d, err := readDrill(path)
		if err != nil {
			s.logger.Warn("skipping drill file", zap.String("path", path), zap.Error(err))
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func readDrill(path string) (domain.Drill, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.Drill{}, fmt.Errorf("read %s: %w", path, err)
	}
	raw := drillFile{}
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return domain.Drill{}, fmt.Errorf("decode %s: %w", path, err)
	}
	d := domain.Drill{ID: raw.ID, Name: raw.Name, Description: raw.Description}
	for _, c := range raw.Cues {
		d.Cues = append(d.Cues, domain.Cue{Offset: c.T, Text: c.Text})
	}
	if err := d.Validate(); err != nil {
		return domain.Drill{}, err
	}
	return d, nil
}
