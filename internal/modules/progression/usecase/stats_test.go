package usecase_test

import (
	"context"
	"testing"
	"time"

	"focusflow/internal/modules/progression/usecase"
	sessiondto "focusflow/internal/modules/session/dto"
)

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

type fakeSessions struct {
	history []sessiondto.SessionOutput
}

func (f fakeSessions) LogSession(context.Context, sessiondto.LogInput) (sessiondto.LogOutput, error) {
	return sessiondto.LogOutput{}, nil
}
func (f fakeSessions) ValidateFeedback(sessiondto.LogInput) error { return nil }
func (f fakeSessions) ListSessions(context.Context) ([]sessiondto.SessionOutput, error) {
	return f.history, nil
}
func (f fakeSessions) Reindex(context.Context) (sessiondto.ReindexOutput, error) {
	return sessiondto.ReindexOutput{}, nil
}

type fakePrefs struct {
	sessiondto.PreferencesOutput
}

func (f fakePrefs) GetPreferences(context.Context) (sessiondto.PreferencesOutput, error) {
	return f.PreferencesOutput, nil
}
func (f fakePrefs) SetTheme(context.Context, string) (sessiondto.PreferencesOutput, error) {
	return f.PreferencesOutput, nil
}
func (f fakePrefs) ToggleTheme(context.Context) (sessiondto.PreferencesOutput, error) {
	return f.PreferencesOutput, nil
}
func (f fakePrefs) SetEnvironment(context.Context, string) (sessiondto.PreferencesOutput, error) {
	return f.PreferencesOutput, nil
}
func (f fakePrefs) CycleEnvironment(context.Context) (sessiondto.PreferencesOutput, error) {
	return f.PreferencesOutput, nil
}
func (f fakePrefs) SetMusic(context.Context, bool) (sessiondto.PreferencesOutput, error) {
	return f.PreferencesOutput, nil
}
func (f fakePrefs) ToggleMusic(context.Context) (sessiondto.PreferencesOutput, error) {
	return f.PreferencesOutput, nil
}
func (f fakePrefs) SetBrainViz(context.Context, bool) (sessiondto.PreferencesOutput, error) {
	return f.PreferencesOutput, nil
}
func (f fakePrefs) ToggleBrainViz(context.Context) (sessiondto.PreferencesOutput, error) {
	return f.PreferencesOutput, nil
}

type recordingObserver struct {
	streak, xp int
	calls      int
}

func (r *recordingObserver) ObserveProgress(streak, totalXP int) {
	r.streak, r.xp = streak, totalXP
	r.calls++
}

func TestStatsCombinesHistoryAndXP(t *testing.T) {
	t.Parallel()
	// Wednesday 2026-03-11; the week starts Sunday 2026-03-08.
	now := time.Date(2026, 3, 11, 20, 0, 0, 0, time.UTC)
	history := []sessiondto.SessionOutput{
		{ID: "20260301-1", Timestamp: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC), DurationMin: 20},
		{ID: "20260302-1", Timestamp: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), DurationMin: 20},
		{ID: "20260303-1", Timestamp: time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC), DurationMin: 20},
		{ID: "20260303-2", Timestamp: time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC), DurationMin: 20},
		{ID: "20260308-1", Timestamp: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), DurationMin: 5},
		{ID: "20260310-1", Timestamp: time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC), DurationMin: 10},
		{ID: "20260311-1", Timestamp: time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC), DurationMin: 10},
	}
	observer := &recordingObserver{}
	uc := usecase.NewInteractor(fakeSessions{history: history}, fakePrefs{sessiondto.PreferencesOutput{TotalXP: 250}}, fixedClock{now: now}, observer)

	stats, err := uc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Streak != 2 {
		t.Fatalf("expected streak 2, got %d", stats.Streak)
	}
	if stats.LongestStreak != 3 {
		t.Fatalf("expected longest streak 3, got %d", stats.LongestStreak)
	}
	if stats.WeeklyMinutes != 25 {
		t.Fatalf("expected 25 weekly minutes, got %d", stats.WeeklyMinutes)
	}
	if stats.TotalSessions != 7 || stats.TotalMinutes != 105 {
		t.Fatalf("unexpected totals %d/%d", stats.TotalSessions, stats.TotalMinutes)
	}
	if stats.Level.Current.ID != "zen" || stats.Level.Next.ID != "guru" || stats.Level.ProgressPercent != 25 {
		t.Fatalf("unexpected level %+v", stats.Level)
	}
	unlocked := 0
	for _, a := range stats.Achievements {
		if a.Unlocked {
			unlocked++
		}
	}
	if len(stats.Achievements) != 7 || unlocked != 3 {
		t.Fatalf("expected 3 of 7 achievements unlocked, got %d of %d", unlocked, len(stats.Achievements))
	}
	if observer.calls != 1 || observer.streak != 2 || observer.xp != 250 {
		t.Fatalf("observer not notified correctly: %+v", observer)
	}
}

func TestStatsEmptyHistory(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(fakeSessions{}, fakePrefs{}, fixedClock{now: time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)}, nil)
	stats, err := uc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Streak != 0 || stats.WeeklyMinutes != 0 || stats.TotalSessions != 0 {
		t.Fatalf("expected zeroed stats, got %+v", stats)
	}
	if stats.Level.Current.ID != "baby" || stats.Level.ProgressPercent != 0 {
		t.Fatalf("unexpected level %+v", stats.Level)
	}
}

func TestLevelTerminalTier(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(fakeSessions{}, fakePrefs{}, fixedClock{now: time.Now()}, nil)
	level := uc.Level(2000)
	if level.Current.ID != "enlightened" || level.Next.ID != "enlightened" || level.ProgressPercent != 100 || level.Current.MaxXP != -1 {
		t.Fatalf("unexpected terminal level %+v", level)
	}
}
