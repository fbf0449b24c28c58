package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	drillin "focusflow/internal/modules/drill/port/in"
	"focusflow/internal/modules/practice/domain"
	practicedto "focusflow/internal/modules/practice/dto"
	practicein "focusflow/internal/modules/practice/port/in"
	practiceout "focusflow/internal/modules/practice/port/out"
	"focusflow/internal/modules/practice/service"
	sessiondto "focusflow/internal/modules/session/dto"
	sessionin "focusflow/internal/modules/session/port/in"
	"focusflow/internal/platform/clock"
	apperrors "focusflow/internal/platform/errors"
	"focusflow/internal/platform/id"
)

type Deps struct {
	Scheduler   clock.Scheduler
	CueClock    service.CueClock
	Drills      drillin.Usecase
	Sessions    sessionin.Usecase
	Preferences sessionin.PreferencesUsecase
	Audio       practiceout.AudioPlayer
	Metrics     practiceout.Metrics
	IDs         id.Generator
	Logger      *zap.Logger
}

// Controller owns at most one engine at a time. Engine events are tagged
// with the generation they were started under; events from a replaced
// engine are dropped.
type Controller struct {
	deps Deps

	mu       sync.Mutex
	listener func(practicedto.Event)
	engine   *service.Engine
	gen      uint64
	drillID  string
	name     string
	minutes  int
	music    bool
	cue      string
	brain    string
	pending  *domain.Summary
}

func NewController(deps Deps) practicein.Usecase {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Audio == nil {
		deps.Audio = noopAudio{}
	}
	if deps.Metrics == nil {
		deps.Metrics = noopMetrics{}
	}
	if deps.IDs == nil {
		deps.IDs = id.UUID{}
	}
	return &Controller{deps: deps}
}

func (c *Controller) SetListener(fn func(practicedto.Event)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listener = fn
}

func (c *Controller) StartPractice(ctx context.Context, input practicedto.StartInput) (practicedto.Snapshot, error) {
	if input.Minutes <= 0 {
		return practicedto.Snapshot{}, apperrors.ErrInvalidDuration
	}
	prefs, err := c.deps.Preferences.GetPreferences(ctx)
	if err != nil {
		return practicedto.Snapshot{}, err
	}

	name := input.DrillID
	var cues []domain.Mark
	drill, err := c.deps.Drills.GetDrill(ctx, input.DrillID)
	switch {
	case err == nil:
		name = drill.Name
		for _, cue := range drill.Cues {
			cues = append(cues, domain.Mark{Kind: domain.MarkCue, Offset: cue.Offset, Text: cue.Text})
		}
	case errors.Is(err, apperrors.ErrNotFound):
		c.deps.Logger.Info("unknown drill, running timer only", zap.String("drill", input.DrillID))
	default:
		return practicedto.Snapshot{}, fmt.Errorf("lookup drill: %w", err)
	}
	tracks := [][]domain.Mark{cues}
	if prefs.BrainVizEnabled {
		tracks = append(tracks, domain.BrainTrack())
	}

	c.mu.Lock()
	c.stopLocked()
	if c.pending != nil {
		c.deps.Logger.Info("unlogged practice discarded", zap.String("drill", c.pending.DrillID))
		c.pending = nil
	}
	c.gen++
	gen := c.gen
	c.drillID, c.name, c.minutes = input.DrillID, name, input.Minutes
	c.music = prefs.MusicEnabled
	c.cue, c.brain = "", ""
	engine := service.NewEngine(c.deps.Scheduler, c.deps.CueClock, domain.Timeline(tracks...), func(ev service.Event) {
		c.onEngineEvent(gen, ev)
	})
	initial, err := engine.Arm(input.Minutes)
	if err != nil {
		c.mu.Unlock()
		return practicedto.Snapshot{}, err
	}
	c.engine = engine
	if c.music {
		c.deps.Audio.PracticeStarted(prefs.Environment)
	}
	c.mu.Unlock()

	c.deps.Metrics.PracticeStarted(input.DrillID)
	c.deps.Logger.Info("practice started", zap.String("drill", input.DrillID), zap.Int("minutes", input.Minutes))
	engine.Dispatch(initial)
	return c.Snapshot(), nil
}

func (c *Controller) Pause(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.engine == nil {
		return apperrors.ErrNoActivePractice
	}
	if err := c.engine.Pause(); err != nil {
		return err
	}
	if c.music {
		c.deps.Audio.PracticePaused()
	}
	return nil
}

func (c *Controller) Resume(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.engine == nil {
		return apperrors.ErrNoActivePractice
	}
	if err := c.engine.Resume(); err != nil {
		return err
	}
	if c.music {
		c.deps.Audio.PracticeResumed()
	}
	return nil
}

// EndEarly abandons the running practice. Nothing is persisted.
func (c *Controller) EndEarly(_ context.Context) error {
	c.mu.Lock()
	stopped := c.stopLocked()
	drillID := c.drillID
	c.mu.Unlock()
	if !stopped {
		return apperrors.ErrNoActivePractice
	}
	c.deps.Metrics.PracticeEndedEarly()
	c.deps.Logger.Info("practice ended early", zap.String("drill", drillID))
	return nil
}

func (c *Controller) LogSession(ctx context.Context, input practicedto.LogInput) (practicedto.LogOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		if c.engine != nil && c.engine.Status().State.Active() {
			return practicedto.LogOutput{}, apperrors.ErrPracticeActive
		}
		return practicedto.LogOutput{}, apperrors.ErrNoPendingSession
	}
	summary := *c.pending
	out, err := c.deps.Sessions.LogSession(ctx, sessiondto.LogInput{
		UID:         summary.UID,
		DrillType:   summary.DrillID,
		DurationMin: summary.Minutes,
		FocusRating: input.FocusRating,
		Sentiment:   input.Sentiment,
		Note:        input.Note,
		XPEarned:    summary.XPEarned,
	})
	if err != nil {
		return practicedto.LogOutput{}, err
	}
	c.pending = nil
	c.deps.Metrics.SessionLogged(out.XPEarned, out.TotalXP)
	return practicedto.LogOutput{
		SessionID:   out.Session.ID,
		DurationMin: out.Session.DurationMin,
		XPEarned:    out.XPEarned,
		TotalXP:     out.TotalXP,
		JournalPath: out.JournalPath,
	}, nil
}

func (c *Controller) ValidateLog(input practicedto.LogInput) error {
	return c.deps.Sessions.ValidateFeedback(sessiondto.LogInput{
		FocusRating: input.FocusRating,
		Sentiment:   input.Sentiment,
		Note:        input.Note,
	})
}

func (c *Controller) Skip(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return apperrors.ErrNoPendingSession
	}
	c.pending = nil
	c.deps.Metrics.SessionSkipped()
	return nil
}

func (c *Controller) Snapshot() practicedto.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := practicedto.Snapshot{
		State:     domain.StateIdle.String(),
		DrillID:   c.drillID,
		DrillName: c.name,
		Minutes:   c.minutes,
		Cue:       c.cue,
		Brain:     c.brain,
		Pending:   toSummaryOutput(c.pending),
	}
	if c.engine != nil {
		st := c.engine.Status()
		snap.State = st.State.String()
		snap.Remaining = st.Remaining
	}
	snap.Clock = domain.FormatClock(snap.Remaining)
	return snap
}

// Shutdown stops any running engine without recording metrics.
func (c *Controller) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Controller) stopLocked() bool {
	if c.engine == nil || !c.engine.Stop() {
		return false
	}
	c.gen++
	c.cue, c.brain = "", ""
	if c.music {
		c.deps.Audio.PracticeEnded()
	}
	return true
}

func (c *Controller) onEngineEvent(gen uint64, ev service.Event) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	out := practicedto.Event{Remaining: ev.Remaining, Clock: domain.FormatClock(ev.Remaining)}
	completed := false
	switch ev.Kind {
	case service.EventTick:
		out.Kind = practicedto.EventTick
	case service.EventMark:
		out.Text = ev.Mark.Text
		if ev.Mark.Kind == domain.MarkBrain {
			c.brain = ev.Mark.Text
			out.Kind = practicedto.EventBrain
		} else {
			c.cue = ev.Mark.Text
			out.Kind = practicedto.EventCue
		}
	case service.EventComplete:
		summary := domain.Summary{
			UID:         c.deps.IDs.New(),
			DrillID:     c.drillID,
			DrillName:   c.name,
			Minutes:     c.minutes,
			XPEarned:    domain.XPEarned(c.minutes),
			CompletedAt: c.deps.Scheduler.Now(),
		}
		c.pending = &summary
		c.cue, c.brain = "", ""
		if c.music {
			c.deps.Audio.PracticeEnded()
		}
		out.Kind = practicedto.EventComplete
		out.Summary = toSummaryOutput(&summary)
		completed = true
	}
	listener := c.listener
	c.mu.Unlock()

	if completed {
		c.deps.Metrics.PracticeCompleted()
		c.deps.Logger.Info("practice completed", zap.String("drill", out.Summary.DrillID), zap.Int("xp_earned", out.Summary.XPEarned))
	}
	if listener != nil {
		listener(out)
	}
}

func toSummaryOutput(s *domain.Summary) *practicedto.SummaryOutput {
	if s == nil {
		return nil
	}
	return &practicedto.SummaryOutput{DrillID: s.DrillID, DrillName: s.DrillName, Minutes: s.Minutes, XPEarned: s.XPEarned}
}

type noopAudio struct{}

func (noopAudio) PracticeStarted(string) {}
func (noopAudio) PracticePaused()        {}
func (noopAudio) PracticeResumed()       {}
func (noopAudio) PracticeEnded()         {}

type noopMetrics struct{}

func (noopMetrics) PracticeStarted(string) {}
func (noopMetrics) PracticeCompleted()     {}
func (noopMetrics) PracticeEndedEarly()    {}
func (noopMetrics) SessionSkipped()        {}
func (noopMetrics) SessionLogged(int, int) {}
