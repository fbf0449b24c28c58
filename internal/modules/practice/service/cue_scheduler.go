package service

import (
	"fmt"
	"strings"
	"time"

	"focusflow/internal/modules/practice/domain"
	"focusflow/internal/platform/clock"
	apperrors "focusflow/internal/platform/errors"
)

type CueClock string

const (
	// CueClockRunning measures cue offsets in running seconds, so pausing
	// the timer also holds back the cues.
	CueClockRunning CueClock = "running"
	// CueClockWall measures cue offsets from the start of the practice
	// regardless of pauses.
	CueClockWall CueClock = "wall"
)

func ParseCueClock(raw string) (CueClock, error) {
	switch CueClock(strings.ToLower(strings.TrimSpace(raw))) {
	case "", CueClockRunning:
		return CueClockRunning, nil
	case CueClockWall:
		return CueClockWall, nil
	default:
		return "", fmt.Errorf("%w: unknown cue clock %q", apperrors.ErrInvalidInput, raw)
	}
}

// cueTrack decides when marks become due. Every method is called with the
// engine lock held.
type cueTrack interface {
	// begin returns the marks due at offset 0.
	begin(total int) []domain.Mark
	// advance returns the marks due once elapsed running seconds have passed.
	advance(elapsed int) []domain.Mark
	// finish cancels pending work and returns every unfired mark within total.
	finish(total int) []domain.Mark
	cancel()
}

func within(marks []domain.Mark, total int) []domain.Mark {
	out := make([]domain.Mark, 0, len(marks))
	for _, m := range marks {
		if m.Offset <= total {
			out = append(out, m)
		}
	}
	return out
}

// ─── running clock ───

type runningTrack struct {
	marks []domain.Mark
	next  int
}

func newRunningTrack(marks []domain.Mark) *runningTrack {
	return &runningTrack{marks: marks}
}

func (r *runningTrack) begin(total int) []domain.Mark {
	r.marks = within(r.marks, total)
	r.next = 0
	return r.advance(0)
}

func (r *runningTrack) advance(elapsed int) []domain.Mark {
	var due []domain.Mark
	for r.next < len(r.marks) && r.marks[r.next].Offset <= elapsed {
		due = append(due, r.marks[r.next])
		r.next++
	}
	return due
}

func (r *runningTrack) finish(total int) []domain.Mark {
	return r.advance(total)
}

func (r *runningTrack) cancel() {
	r.next = len(r.marks)
}

// ─── wall clock ───

// wallTrack arms one timer per distinct offset. Marks sharing an offset
// fire together in timeline order.
type wallTrack struct {
	engine *Engine
	marks  []domain.Mark
	fired  []bool
	timers []clock.Timer
	gen    uint64
}

func newWallTrack(engine *Engine, marks []domain.Mark) *wallTrack {
	return &wallTrack{engine: engine, marks: marks}
}

func (w *wallTrack) begin(total int) []domain.Mark {
	w.marks = within(w.marks, total)
	w.fired = make([]bool, len(w.marks))
	w.gen++
	gen := w.gen

	var due []domain.Mark
	for i := 0; i < len(w.marks); {
		j := i
		for j < len(w.marks) && w.marks[j].Offset == w.marks[i].Offset {
			j++
		}
		if w.marks[i].Offset == 0 {
			due = append(due, w.collect(i, j)...)
		} else {
			from, to := i, j
			d := time.Duration(w.marks[i].Offset) * time.Second
			w.timers = append(w.timers, w.engine.sched.AfterFunc(d, func() {
				w.engine.fireWall(gen, from, to)
			}))
		}
		i = j
	}
	return due
}

func (w *wallTrack) collect(from, to int) []domain.Mark {
	var due []domain.Mark
	for k := from; k < to; k++ {
		if !w.fired[k] {
			w.fired[k] = true
			due = append(due, w.marks[k])
		}
	}
	return due
}

func (w *wallTrack) advance(int) []domain.Mark { return nil }

func (w *wallTrack) finish(int) []domain.Mark {
	w.cancel()
	return w.collect(0, len(w.marks))
}

func (w *wallTrack) cancel() {
	for _, t := range w.timers {
		t.Stop()
	}
	w.timers = nil
	w.gen++
}
