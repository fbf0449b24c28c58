package in

import (
	"context"
	"fmt"
	"io"

	"focusflow/internal/modules/practice/dto"
	practicein "focusflow/internal/modules/practice/port/in"
)

// RunInput drives one headless practice from the command line.
type RunInput struct {
	DrillID     string
	Minutes     int
	Log         bool
	FocusRating *int
	Sentiment   string
	Note        string
}

type RunResult struct {
	Completed bool
	Summary   dto.SummaryOutput
	Logged    *dto.LogOutput
}

type CLIHandler struct {
	usecase practicein.Usecase
}

func NewCLIHandler(usecase practicein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Run starts a practice and blocks until it completes or ctx is cancelled.
// Cancellation ends the practice early and nothing is logged. Feedback for
// --log is checked before the countdown begins.
func (h CLIHandler) Run(ctx context.Context, input RunInput, w io.Writer) (RunResult, error) {
	logInput := dto.LogInput{
		FocusRating: input.FocusRating,
		Sentiment:   input.Sentiment,
		Note:        input.Note,
	}
	if input.Log {
		if err := h.usecase.ValidateLog(logInput); err != nil {
			return RunResult{}, err
		}
	}

	done := make(chan dto.SummaryOutput, 1)
	lines := make(chan string, 64)
	h.usecase.SetListener(func(ev dto.Event) {
		switch ev.Kind {
		case dto.EventTick:
			if ev.Remaining%60 == 0 || ev.Remaining <= 5 {
				pushLine(lines, ev.Clock)
			}
		case dto.EventCue:
			pushLine(lines, "» "+ev.Text)
		case dto.EventBrain:
			pushLine(lines, "  ~ "+ev.Text)
		case dto.EventComplete:
			if ev.Summary != nil {
				done <- *ev.Summary
			}
		}
	})
	defer h.usecase.SetListener(nil)

	snap, err := h.usecase.StartPractice(ctx, dto.StartInput{DrillID: input.DrillID, Minutes: input.Minutes})
	if err != nil {
		return RunResult{}, err
	}
	name := snap.DrillName
	if name == "" {
		name = "timer"
	}
	fmt.Fprintf(w, "%s · %d min (ctrl-c to end early)\n%s\n", name, snap.Minutes, snap.Clock)

	for {
		select {
		case line := <-lines:
			fmt.Fprintln(w, line)
		case <-ctx.Done():
			if err := h.usecase.EndEarly(context.WithoutCancel(ctx)); err != nil {
				return RunResult{}, err
			}
			fmt.Fprintln(w, "ended early, nothing logged")
			return RunResult{}, nil
		case summary := <-done:
			drainLines(lines, w)
			fmt.Fprintf(w, "complete: %d min, +%d XP\n", summary.Minutes, summary.XPEarned)
			result := RunResult{Completed: true, Summary: summary}
			if !input.Log {
				return result, h.usecase.Skip(ctx)
			}
			out, err := h.usecase.LogSession(ctx, logInput)
			if err != nil {
				return result, err
			}
			result.Logged = &out
			fmt.Fprintf(w, "logged %s, total XP %d\n", out.SessionID, out.TotalXP)
			return result, nil
		}
	}
}

func (h CLIHandler) Start(ctx context.Context, drillID string, minutes int) (dto.Snapshot, error) {
	return h.usecase.StartPractice(ctx, dto.StartInput{DrillID: drillID, Minutes: minutes})
}

func (h CLIHandler) Pause(ctx context.Context) error    { return h.usecase.Pause(ctx) }
func (h CLIHandler) Resume(ctx context.Context) error   { return h.usecase.Resume(ctx) }
func (h CLIHandler) EndEarly(ctx context.Context) error { return h.usecase.EndEarly(ctx) }
func (h CLIHandler) Skip(ctx context.Context) error     { return h.usecase.Skip(ctx) }

func (h CLIHandler) Log(ctx context.Context, input dto.LogInput) (dto.LogOutput, error) {
	return h.usecase.LogSession(ctx, input)
}

func (h CLIHandler) Snapshot() dto.Snapshot { return h.usecase.Snapshot() }

func (h CLIHandler) SetListener(fn func(dto.Event)) { h.usecase.SetListener(fn) }

// pushLine drops output rather than block the engine goroutine.
func pushLine(lines chan<- string, line string) {
	select {
	case lines <- line:
	default:
	}
}

func drainLines(lines <-chan string, w io.Writer) {
	for {
		select {
		case line := <-lines:
			fmt.Fprintln(w, line)
		default:
			return
		}
	}
}
