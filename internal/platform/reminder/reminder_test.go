package reminder_test

import (
	"testing"
	"time"

	"focusflow/internal/platform/reminder"
)

func TestNextActivation(t *testing.T) {
	t.Parallel()
	s, err := reminder.Parse("30 20 * * *")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	now := time.Date(2026, 3, 4, 21, 0, 0, 0, time.UTC)
	next, ok := s.Next(now)
	if !ok {
		t.Fatalf("schedule should be enabled")
	}
	want := time.Date(2026, 3, 5, 20, 30, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("expected %s, got %s", want, next)
	}
}

func TestEmptySpecIsDisabled(t *testing.T) {
	t.Parallel()
	s, err := reminder.Parse("")
	if err != nil {
		t.Fatalf("parse empty: %v", err)
	}
	if s.Enabled() {
		t.Fatalf("empty spec must be disabled")
	}
	if _, ok := s.Next(time.Now()); ok {
		t.Fatalf("disabled schedule has no next activation")
	}
	if _, err := reminder.Parse("every day"); err == nil {
		t.Fatalf("invalid spec must fail")
	}
}
