package usecase_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	drillservice "focusflow/internal/modules/drill/service"
	drillusecase "focusflow/internal/modules/drill/usecase"
	practicedto "focusflow/internal/modules/practice/dto"
	"focusflow/internal/modules/practice/service"
	"focusflow/internal/modules/practice/usecase"
	sessionout "focusflow/internal/modules/session/adapter/out"
	sessionservice "focusflow/internal/modules/session/service"
	sessionusecase "focusflow/internal/modules/session/usecase"
	"focusflow/internal/platform/clock"
	"focusflow/internal/platform/id"
	"focusflow/internal/platform/tx"
)

func TestTenMinutePracticeEndToEnd(t *testing.T) {
	t.Parallel()
	vault := t.TempDir()
	fake := clock.NewFake(time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC))

	store, err := sessionout.NewSQLiteSessionStore(filepath.Join(vault, ".focusflow", "focusflow.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	prefsSvc := sessionservice.NewPreferencesService(sessionout.NewFilePreferencesStore(filepath.Join(vault, ".focusflow", "preferences.json")), zap.NewNop())
	sessionSvc := sessionservice.NewSessionService(fake, id.UUID{}, store, sessionout.NewVaultJournal(vault, zap.NewNop()), zap.NewNop())
	sessions := sessionusecase.NewInteractor(sessionSvc, prefsSvc, tx.NoopManager{}, zap.NewNop())
	prefs := sessionusecase.NewPreferencesInteractor(prefsSvc)

	ctrl := usecase.NewController(usecase.Deps{
		Scheduler:   fake,
		CueClock:    service.CueClockWall,
		Drills:      drillusecase.NewInteractor(drillservice.NewCatalogService(context.Background(), nil, zap.NewNop())),
		Sessions:    sessions,
		Preferences: prefs,
	})
	t.Cleanup(ctrl.Shutdown)

	ctx := context.Background()
	if _, err := ctrl.StartPractice(ctx, practicedto.StartInput{DrillID: "attention_to_sound", Minutes: 10}); err != nil {
		t.Fatalf("start: %v", err)
	}
	fake.Advance(10 * time.Minute)
	out, err := ctrl.LogSession(ctx, practicedto.LogInput{Sentiment: "calm"})
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if out.XPEarned != 100 || out.TotalXP != 100 || out.SessionID != "20260307-1" {
		t.Fatalf("unexpected log output %+v", out)
	}

	records, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 || records[0].DurationMin != 10 || records[0].Type != "attention_to_sound" {
		t.Fatalf("unexpected records %+v", records)
	}
	stored, _ := prefs.GetPreferences(ctx)
	if stored.TotalXP != 100 {
		t.Fatalf("expected 100 xp persisted, got %d", stored.TotalXP)
	}
}
