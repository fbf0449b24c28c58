package in

import (
	"context"

	"focusflow/internal/modules/practice/dto"
)

type Usecase interface {
	StartPractice(ctx context.Context, input dto.StartInput) (dto.Snapshot, error)
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	EndEarly(ctx context.Context) error
	LogSession(ctx context.Context, input dto.LogInput) (dto.LogOutput, error)
	Skip(ctx context.Context) error
	// ValidateLog rejects feedback LogSession would refuse, so callers can
	// fail before a practice starts.
	ValidateLog(input dto.LogInput) error
	Snapshot() dto.Snapshot
	// SetListener replaces the event sink. Events are delivered off the
	// caller's goroutine in timeline order.
	SetListener(fn func(dto.Event))
	Shutdown()
}
