package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"focusflow/internal/modules/session/domain"
	sessionout "focusflow/internal/modules/session/port/out"
)

type FilePreferencesStore struct {
	path string
}

func NewFilePreferencesStore(path string) sessionout.PreferencesStore {
	return &FilePreferencesStore{path: path}
}

// Load returns defaults alongside the error when the file is unreadable, so
// callers that choose to degrade still get a usable value.
func (s *FilePreferencesStore) Load(_ context.Context) (domain.Preferences, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.DefaultPreferences(), nil
		}
		return domain.DefaultPreferences(), fmt.Errorf("read preferences: %w", err)
	}
	prefs := domain.DefaultPreferences()
	if err := json.Unmarshal(payload, &prefs); err != nil {
		return domain.DefaultPreferences(), fmt.Errorf("decode preferences: %w", err)
	}
	return prefs.Normalize(), nil
}

func (s *FilePreferencesStore) Save(_ context.Context, prefs domain.Preferences) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}
	payload, err := json.MarshalIndent(prefs.Normalize(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".preferences-*.json")
	if err != nil {
		return fmt.Errorf("create preferences temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()
	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close preferences: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replace preferences: %w", err)
	}
	return nil
}
