package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	sessionout "focusflow/internal/modules/session/adapter/out"
	"focusflow/internal/modules/session/domain"
	sessiondto "focusflow/internal/modules/session/dto"
	sessionin "focusflow/internal/modules/session/port/in"
	portout "focusflow/internal/modules/session/port/out"
	"focusflow/internal/modules/session/service"
	"focusflow/internal/modules/session/usecase"
	apperrors "focusflow/internal/platform/errors"
)

type fakeClock struct {
	values []time.Time
	idx    int
}

func (f *fakeClock) Now() time.Time {
	if f.idx >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.idx]
	f.idx++
	return v
}

type fakeID struct{ n int }

func (f *fakeID) New() string {
	f.n++
	return "uid-" + string(rune('0'+f.n))
}

type brokenStore struct{}

func (brokenStore) List(context.Context) ([]domain.Record, error) {
	return nil, errors.New("database is locked")
}
func (brokenStore) Append(context.Context, domain.Record) (domain.Record, error) {
	return domain.Record{}, errors.New("database is locked")
}
func (brokenStore) Replace(context.Context, []domain.Record) error {
	return errors.New("database is locked")
}

type app struct {
	sessions sessionin.Usecase
	prefs    sessionin.PreferencesUsecase
	vault    string
}

func newApp(t *testing.T, clk *fakeClock, journal bool) app {
	t.Helper()
	vault := t.TempDir()
	store, err := sessionout.NewSQLiteSessionStore(filepath.Join(vault, ".focusflow", "focusflow.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	var j portout.Journal
	if journal {
		j = sessionout.NewVaultJournal(vault, zap.NewNop())
	}
	prefsSvc := service.NewPreferencesService(sessionout.NewFilePreferencesStore(filepath.Join(vault, ".focusflow", "preferences.json")), zap.NewNop())
	svc := service.NewSessionService(clk, &fakeID{}, store, j, zap.NewNop())
	return app{
		sessions: usecase.NewInteractor(svc, prefsSvc, nil, zap.NewNop()),
		prefs:    usecase.NewPreferencesInteractor(prefsSvc),
		vault:    vault,
	}
}

func TestLogSessionAwardsXPAndRecordsDuration(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC)}}
	a := newApp(t, clk, true)
	rating := 4

	out, err := a.sessions.LogSession(context.Background(), sessiondto.LogInput{
		DrillType:   "focused_breathing",
		DurationMin: 10,
		FocusRating: &rating,
		Sentiment:   "calm",
		Note:        "quiet morning",
		XPEarned:    100,
	})
	if err != nil {
		t.Fatalf("log session: %v", err)
	}
	if out.TotalXP != 100 || out.XPEarned != 100 {
		t.Fatalf("expected +100 xp, got %+v", out)
	}
	if out.Session.DurationMin != 10 || out.Session.ID != "20260307-1" {
		t.Fatalf("unexpected record %+v", out.Session)
	}
	note, err := os.ReadFile(out.JournalPath)
	if err != nil {
		t.Fatalf("read journal note: %v", err)
	}
	if !strings.Contains(string(note), "quiet morning") || !strings.Contains(string(note), "sentiment: calm") {
		t.Fatalf("unexpected note:\n%s", note)
	}

	prefs, err := a.prefs.GetPreferences(context.Background())
	if err != nil {
		t.Fatalf("get prefs: %v", err)
	}
	if prefs.TotalXP != 100 {
		t.Fatalf("expected persisted xp 100, got %d", prefs.TotalXP)
	}
	list, err := a.sessions.ListSessions(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Note != "quiet morning" {
		t.Fatalf("unexpected history %+v", list)
	}
}

func TestLogSessionOrdinalsWithinDay(t *testing.T) {
	t.Parallel()
	day := time.Date(2026, 3, 7, 7, 0, 0, 0, time.UTC)
	clk := &fakeClock{values: []time.Time{day, day.Add(time.Hour), day.Add(2 * time.Hour)}}
	a := newApp(t, clk, false)

	for i, want := range []string{"20260307-1", "20260307-2", "20260307-3"} {
		out, err := a.sessions.LogSession(context.Background(), sessiondto.LogInput{DrillType: "body_scan", DurationMin: 5, XPEarned: 50})
		if err != nil {
			t.Fatalf("log %d: %v", i, err)
		}
		if out.Session.ID != want {
			t.Fatalf("log %d: expected %s, got %s", i, want, out.Session.ID)
		}
		if out.JournalPath != "" {
			t.Fatalf("journal disabled but got path %s", out.JournalPath)
		}
	}
	prefs, _ := a.prefs.GetPreferences(context.Background())
	if prefs.TotalXP != 150 {
		t.Fatalf("expected 150 xp, got %d", prefs.TotalXP)
	}
}

func TestLogSessionValidation(t *testing.T) {
	t.Parallel()
	a := newApp(t, &fakeClock{values: []time.Time{time.Date(2026, 3, 7, 7, 0, 0, 0, time.UTC)}}, false)
	bad := 0
	cases := []struct {
		name  string
		input sessiondto.LogInput
		want  error
	}{
		{"zero duration", sessiondto.LogInput{DurationMin: 0}, apperrors.ErrInvalidDuration},
		{"rating", sessiondto.LogInput{DurationMin: 5, FocusRating: &bad}, apperrors.ErrInvalidRating},
		{"sentiment", sessiondto.LogInput{DurationMin: 5, Sentiment: "elated"}, apperrors.ErrInvalidSentiment},
		{"negative xp", sessiondto.LogInput{DurationMin: 5, XPEarned: -1}, apperrors.ErrInvalidInput},
	}
	for _, tc := range cases {
		if _, err := a.sessions.LogSession(context.Background(), tc.input); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
	list, _ := a.sessions.ListSessions(context.Background())
	if len(list) != 0 {
		t.Fatalf("rejected logs must not persist, got %d", len(list))
	}
}

func TestListSessionsDegradesToEmpty(t *testing.T) {
	t.Parallel()
	prefsSvc := service.NewPreferencesService(sessionout.NewFilePreferencesStore(filepath.Join(t.TempDir(), "p.json")), zap.NewNop())
	svc := service.NewSessionService(&fakeClock{values: []time.Time{time.Now()}}, &fakeID{}, brokenStore{}, nil, zap.NewNop())
	uc := usecase.NewInteractor(svc, prefsSvc, nil, zap.NewNop())

	list, err := uc.ListSessions(context.Background())
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty list without error, got %v %v", list, err)
	}
	if _, err := uc.LogSession(context.Background(), sessiondto.LogInput{DurationMin: 5, XPEarned: 50}); err == nil {
		t.Fatalf("writes must surface storage errors")
	}
	prefs, _ := usecase.NewPreferencesInteractor(prefsSvc).GetPreferences(context.Background())
	if prefs.TotalXP != 0 {
		t.Fatalf("failed append must not award xp, got %d", prefs.TotalXP)
	}
}

func TestReindexRebuildsFromJournal(t *testing.T) {
	t.Parallel()
	day := time.Date(2026, 3, 7, 7, 0, 0, 0, time.UTC)
	clk := &fakeClock{values: []time.Time{day, day.AddDate(0, 0, 1)}}
	a := newApp(t, clk, true)
	for i := 0; i < 2; i++ {
		if _, err := a.sessions.LogSession(context.Background(), sessiondto.LogInput{DrillType: "body_scan", DurationMin: 5, XPEarned: 50}); err != nil {
			t.Fatalf("log: %v", err)
		}
	}
	imported := domain.Record{UID: "uid-imported", ID: "20260306-1", Timestamp: day.AddDate(0, 0, -1), DurationMin: 15, Type: "attention_to_sound"}
	if _, err := sessionout.NewVaultJournal(a.vault, zap.NewNop()).Write(context.Background(), imported); err != nil {
		t.Fatalf("write imported note: %v", err)
	}

	out, err := a.sessions.Reindex(context.Background())
	if err != nil {
		t.Fatalf("reindex: %v", err)
	}
	if out.Sessions != 3 {
		t.Fatalf("expected 3 sessions, got %d", out.Sessions)
	}
	list, _ := a.sessions.ListSessions(context.Background())
	if len(list) != 3 || list[0].ID != "20260306-1" || list[1].ID != "20260307-1" || list[2].ID != "20260308-1" {
		t.Fatalf("unexpected reindexed history %+v", list)
	}
}

type flakyPrefsStore struct {
	portout.PreferencesStore
	failures int
}

func (f *flakyPrefsStore) Save(ctx context.Context, prefs domain.Preferences) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("disk full")
	}
	return f.PreferencesStore.Save(ctx, prefs)
}

func TestRetriedLogReusesRecord(t *testing.T) {
	t.Parallel()
	vault := t.TempDir()
	store, err := sessionout.NewSQLiteSessionStore(filepath.Join(vault, "focusflow.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	prefsStore := &flakyPrefsStore{
		PreferencesStore: sessionout.NewFilePreferencesStore(filepath.Join(vault, "preferences.json")),
		failures:         1,
	}
	prefsSvc := service.NewPreferencesService(prefsStore, zap.NewNop())
	clk := &fakeClock{values: []time.Time{time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC)}}
	sessions := usecase.NewInteractor(service.NewSessionService(clk, &fakeID{}, store, nil, zap.NewNop()), prefsSvc, nil, zap.NewNop())

	input := sessiondto.LogInput{UID: "practice-1", DrillType: "focused_breathing", DurationMin: 10, XPEarned: 100}
	if _, err := sessions.LogSession(context.Background(), input); err == nil {
		t.Fatal("expected the preferences save to fail")
	}
	out, err := sessions.LogSession(context.Background(), input)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if out.Session.ID != "20260307-1" || out.Session.UID != "practice-1" || out.TotalXP != 100 {
		t.Fatalf("unexpected retry output %+v", out)
	}
	list, err := sessions.ListSessions(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one stored session after retry, got %d", len(list))
	}
}
