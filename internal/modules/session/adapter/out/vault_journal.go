package out

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"focusflow/internal/modules/session/domain"
	sessionout "focusflow/internal/modules/session/port/out"
	"focusflow/internal/platform/markdown"
	"focusflow/internal/platform/slug"
)

const noteHeading = "## Note"

type VaultJournal struct {
	vaultPath string
	logger    *zap.Logger
}

func NewVaultJournal(vaultPath string, logger *zap.Logger) sessionout.Journal {
	return &VaultJournal{vaultPath: vaultPath, logger: logger}
}

type noteMeta struct {
	SchemaVersion int    `yaml:"schema_version"`
	ID            string `yaml:"id"`
	UID           string `yaml:"uid"`
	Timestamp     string `yaml:"timestamp"`
	DurationMin   int    `yaml:"duration_min"`
	Type          string `yaml:"type"`
	FocusRating   *int   `yaml:"focus_rating,omitempty"`
	Sentiment     string `yaml:"sentiment,omitempty"`
}

func (j *VaultJournal) root() string {
	return filepath.Join(j.vaultPath, "sessions")
}

func (j *VaultJournal) Write(_ context.Context, record domain.Record) (string, error) {
	ts := record.Timestamp
	dir := filepath.Join(j.root(), ts.Format("2006"), ts.Format("01"), ts.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create journal dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.md", record.ID, slug.Make(record.Type)))

	meta := noteMeta{
		SchemaVersion: domain.SchemaVersion,
		ID:            record.ID,
		UID:           record.UID,
		Timestamp:     ts.Format(time.RFC3339),
		DurationMin:   record.DurationMin,
		Type:          record.Type,
		FocusRating:   record.FocusRating,
		Sentiment:     string(record.Sentiment),
	}
	body := fmt.Sprintf("# Session %s\n\n- Drill: %s\n- Duration: %d minutes\n\n%s\n\n%s\n", record.ID, record.Type, record.DurationMin, noteHeading, record.Note)
	rendered, err := markdown.Encode(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write journal note: %w", err)
	}
	return path, nil
}

// List reads every journal note ordered by timestamp. Notes that cannot be
// parsed are logged and skipped.
func (j *VaultJournal) List(_ context.Context) ([]domain.Record, error) {
	records := []domain.Record{}
	err := filepath.WalkDir(j.root(), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == j.root() {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}
		record, err := readNote(path)
		if err != nil {
			j.logger.Warn("skipping journal note", zap.String("path", path), zap.Error(err))
			return nil
		}
		records = append(records, record)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk journal: %w", err)
	}
	sort.SliceStable(records, func(a, b int) bool {
		if !records[a].Timestamp.Equal(records[b].Timestamp) {
			return records[a].Timestamp.Before(records[b].Timestamp)
		}
		return records[a].ID < records[b].ID
	})
	return records, nil
}

func readNote(path string) (domain.Record, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.Record{}, fmt.Errorf("read note: %w", err)
	}
	meta := noteMeta{}
	body, err := markdown.Decode(string(content), &meta)
	if err != nil {
		return domain.Record{}, err
	}
	if meta.ID == "" || meta.UID == "" {
		return domain.Record{}, fmt.Errorf("note is missing id or uid")
	}
	ts, err := time.Parse(time.RFC3339, meta.Timestamp)
	if err != nil {
		return domain.Record{}, fmt.Errorf("parse timestamp: %w", err)
	}
	record := domain.Record{
		UID:         meta.UID,
		ID:          meta.ID,
		Timestamp:   ts,
		DurationMin: meta.DurationMin,
		Type:        meta.Type,
		FocusRating: meta.FocusRating,
		Sentiment:   domain.Sentiment(meta.Sentiment),
		Note:        noteText(body),
	}
	if err := record.Validate(); err != nil {
		return domain.Record{}, err
	}
	return record, nil
}

func noteText(body string) string {
	idx := strings.Index(body, noteHeading)
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(body[idx+len(noteHeading):])
}
