package usecase

import (
	"context"
	"time"

	"focusflow/internal/modules/progression/domain"
	progressiondto "focusflow/internal/modules/progression/dto"
	progressionin "focusflow/internal/modules/progression/port/in"
	progressionout "focusflow/internal/modules/progression/port/out"
	sessionin "focusflow/internal/modules/session/port/in"
	"focusflow/internal/platform/clock"
)

type Interactor struct {
	sessions sessionin.Usecase
	prefs    sessionin.PreferencesUsecase
	clock    clock.Clock
	observer progressionout.ProgressObserver
}

// NewInteractor accepts a nil observer.
func NewInteractor(sessions sessionin.Usecase, prefs sessionin.PreferencesUsecase, clock clock.Clock, observer progressionout.ProgressObserver) progressionin.Usecase {
	return &Interactor{sessions: sessions, prefs: prefs, clock: clock, observer: observer}
}

func (i *Interactor) Stats(ctx context.Context) (progressiondto.StatsOutput, error) {
	history, err := i.sessions.ListSessions(ctx)
	if err != nil {
		return progressiondto.StatsOutput{}, err
	}
	prefs, err := i.prefs.GetPreferences(ctx)
	if err != nil {
		return progressiondto.StatsOutput{}, err
	}
	now := i.clock.Now()

	dates := make([]time.Time, 0, len(history))
	entries := make([]domain.Entry, 0, len(history))
	totalMinutes := 0
	for _, s := range history {
		dates = append(dates, s.Timestamp)
		entries = append(entries, domain.Entry{Timestamp: s.Timestamp, Minutes: s.DurationMin})
		totalMinutes += s.DurationMin
	}

	out := progressiondto.StatsOutput{
		Streak:        domain.ComputeStreak(dates, now),
		LongestStreak: domain.LongestStreak(dates, now.Location()),
		WeeklyMinutes: domain.WeeklyMinutes(entries, now),
		TotalSessions: len(history),
		TotalMinutes:  totalMinutes,
		Level:         i.Level(prefs.TotalXP),
	}
	for _, tier := range domain.Tiers() {
		out.Achievements = append(out.Achievements, progressiondto.AchievementOutput{
			Tier:     toTierOutput(tier),
			Unlocked: prefs.TotalXP >= tier.MinXP,
		})
	}
	if i.observer != nil {
		i.observer.ObserveProgress(out.Streak, prefs.TotalXP)
	}
	return out, nil
}

func (i *Interactor) Level(xp int) progressiondto.LevelOutput {
	current, next := domain.LevelFor(xp)
	return progressiondto.LevelOutput{
		TotalXP:         xp,
		Current:         toTierOutput(current),
		Next:            toTierOutput(next),
		ProgressPercent: domain.ProgressFraction(xp, current, next) * 100,
	}
}

func toTierOutput(t domain.Tier) progressiondto.TierOutput {
	maxXP := t.MaxXP
	if maxXP == domain.Unbounded {
		maxXP = -1
	}
	return progressiondto.TierOutput{ID: t.ID, Name: t.Name, Icon: t.Icon, MinXP: t.MinXP, MaxXP: maxXP}
}
