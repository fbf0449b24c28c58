package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	sessionout "focusflow/internal/modules/session/adapter/out"
	"focusflow/internal/modules/session/domain"
)

func TestPreferencesDefaultWhenMissing(t *testing.T) {
	t.Parallel()
	store := sessionout.NewFilePreferencesStore(filepath.Join(t.TempDir(), "preferences.json"))
	prefs, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(domain.DefaultPreferences(), prefs); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestPreferencesSaveLoad(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "preferences.json")
	store := sessionout.NewFilePreferencesStore(path)
	want := domain.DefaultPreferences()
	want.Theme = domain.ThemeDark
	want.Environment = domain.EnvironmentZen
	want.MusicEnabled = false
	want.TotalXP = 250

	if err := store.Save(context.Background(), want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("preferences mismatch (-want +got):\n%s", diff)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestPreferencesFileUsesCamelCaseKeys(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "preferences.json")
	seed := `{"theme":"dark","environment":"ocean","musicEnabled":false,"brainVizEnabled":false,"totalXP":420}`
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	store := sessionout.NewFilePreferencesStore(path)
	prefs, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := domain.DefaultPreferences()
	want.Theme = domain.ThemeDark
	want.Environment = domain.EnvironmentOcean
	want.MusicEnabled = false
	want.BrainVizEnabled = false
	want.TotalXP = 420
	if diff := cmp.Diff(want, prefs); diff != "" {
		t.Fatalf("preferences mismatch (-want +got):\n%s", diff)
	}

	if err := store.Save(context.Background(), prefs); err != nil {
		t.Fatalf("save: %v", err)
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	for _, key := range []string{`"schemaVersion"`, `"musicEnabled"`, `"brainVizEnabled"`, `"totalXP"`} {
		if !strings.Contains(string(payload), key) {
			t.Fatalf("saved file missing %s:\n%s", key, payload)
		}
	}
}

func TestPreferencesCorruptFileReturnsDefaultsAndError(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "preferences.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	prefs, err := sessionout.NewFilePreferencesStore(path).Load(context.Background())
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if diff := cmp.Diff(domain.DefaultPreferences(), prefs); diff != "" {
		t.Fatalf("expected defaults (-want +got):\n%s", diff)
	}
}
