package service

import (
	"fmt"
	"sync"
	"time"

	"focusflow/internal/modules/practice/domain"
	"focusflow/internal/platform/clock"
	apperrors "focusflow/internal/platform/errors"
)

type EventKind int

const (
	EventTick EventKind = iota
	EventMark
	EventComplete
)

type Event struct {
	Kind      EventKind
	Remaining int
	Mark      domain.Mark
}

type Status struct {
	State     domain.State
	Total     int
	Remaining int
	Elapsed   int
}

// Engine is a single-use countdown. Scheduler callbacks mutate state under
// mu; events are delivered after mu is released so the sink may call back
// into the engine.
type Engine struct {
	mu    sync.Mutex
	sched clock.Scheduler
	emit  func(Event)
	cues  cueTrack

	state     domain.State
	total     int
	remaining int
	elapsed   int

	tick      clock.Timer
	tickToken uint64
}

func NewEngine(sched clock.Scheduler, mode CueClock, marks []domain.Mark, emit func(Event)) *Engine {
	if emit == nil {
		emit = func(Event) {}
	}
	e := &Engine{sched: sched, emit: emit}
	timeline := domain.Timeline(marks)
	if mode == CueClockWall {
		e.cues = newWallTrack(e, timeline)
	} else {
		e.cues = newRunningTrack(timeline)
	}
	return e
}

// Start emits the full remaining time immediately, then one tick per second.
func (e *Engine) Start(minutes int) error {
	events, err := e.Arm(minutes)
	if err != nil {
		return err
	}
	e.Dispatch(events)
	return nil
}

// Arm moves the engine to running and schedules the first tick without
// emitting anything. The returned events belong to the start and must be
// handed to Dispatch once the caller releases its own locks.
func (e *Engine) Arm(minutes int) ([]Event, error) {
	if minutes <= 0 {
		return nil, apperrors.ErrInvalidDuration
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != domain.StateIdle {
		return nil, fmt.Errorf("%w: start while %s", apperrors.ErrInvalidTransition, e.state)
	}
	e.state = domain.StateRunning
	e.total = minutes * 60
	e.remaining = e.total
	e.elapsed = 0
	events := []Event{{Kind: EventTick, Remaining: e.remaining}}
	events = appendMarks(events, e.cues.begin(e.total), e.remaining)
	e.armTickLocked()
	return events, nil
}

func (e *Engine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != domain.StateRunning {
		return fmt.Errorf("%w: pause while %s", apperrors.ErrInvalidTransition, e.state)
	}
	e.state = domain.StatePaused
	e.stopTickLocked()
	return nil
}

// Resume re-arms a fresh one-second cadence from the current remaining value.
func (e *Engine) Resume() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != domain.StatePaused {
		return fmt.Errorf("%w: resume while %s", apperrors.ErrInvalidTransition, e.state)
	}
	e.state = domain.StateRunning
	e.armTickLocked()
	return nil
}

// Stop cancels the cadence and pending cues. It reports whether the engine
// was running or paused; calling it in any other state does nothing.
func (e *Engine) Stop() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.state.Active() {
		return false
	}
	e.state = domain.StateStopped
	e.stopTickLocked()
	e.cues.cancel()
	return true
}

func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Status{State: e.state, Total: e.total, Remaining: e.remaining, Elapsed: e.elapsed}
}

func (e *Engine) armTickLocked() {
	e.tickToken++
	token := e.tickToken
	e.tick = e.sched.AfterFunc(time.Second, func() { e.onTick(token) })
}

func (e *Engine) stopTickLocked() {
	if e.tick != nil {
		e.tick.Stop()
		e.tick = nil
	}
	e.tickToken++
}

func (e *Engine) onTick(token uint64) {
	e.mu.Lock()
	if token != e.tickToken || e.state != domain.StateRunning {
		e.mu.Unlock()
		return
	}
	e.tick = nil
	e.remaining--
	e.elapsed++

	var events []Event
	if e.remaining > 0 {
		events = append(events, Event{Kind: EventTick, Remaining: e.remaining})
	}
	events = appendMarks(events, e.cues.advance(e.elapsed), e.remaining)
	if e.remaining == 0 {
		e.state = domain.StateCompleted
		e.tickToken++
		events = appendMarks(events, e.cues.finish(e.total), 0)
		events = append(events, Event{Kind: EventComplete})
	} else {
		e.armTickLocked()
	}
	e.mu.Unlock()

	e.Dispatch(events)
}

// fireWall delivers wall-clock marks [from, to) armed by generation gen.
func (e *Engine) fireWall(gen uint64, from, to int) {
	e.mu.Lock()
	w, ok := e.cues.(*wallTrack)
	if !ok || gen != w.gen || !e.state.Active() {
		e.mu.Unlock()
		return
	}
	events := appendMarks(nil, w.collect(from, to), e.remaining)
	e.mu.Unlock()

	e.Dispatch(events)
}

func (e *Engine) Dispatch(events []Event) {
	for _, ev := range events {
		e.emit(ev)
	}
}

func appendMarks(events []Event, marks []domain.Mark, remaining int) []Event {
	for _, m := range marks {
		events = append(events, Event{Kind: EventMark, Remaining: remaining, Mark: m})
	}
	return events
}
