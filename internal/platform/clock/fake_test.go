package clock_test

import (
	"testing"
	"time"

	"focusflow/internal/platform/clock"
)

func TestFakeFiresInDeadlineThenRegistrationOrder(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 1, 4, 9, 0, 0, 0, time.UTC)
	fake := clock.NewFake(start)
	var order []string
	fake.AfterFunc(2*time.Second, func() { order = append(order, "b") })
	fake.AfterFunc(time.Second, func() { order = append(order, "a") })
	fake.AfterFunc(2*time.Second, func() { order = append(order, "c") })
	stopped := fake.AfterFunc(time.Second, func() { order = append(order, "never") })
	if !stopped.Stop() {
		t.Fatalf("first stop should report true")
	}
	if stopped.Stop() {
		t.Fatalf("second stop should report false")
	}

	fake.Advance(1500 * time.Millisecond)
	if len(order) != 1 || order[0] != "a" {
		t.Fatalf("expected only a to fire, got %v", order)
	}
	fake.Advance(time.Second)
	if got := len(order); got != 3 || order[1] != "b" || order[2] != "c" {
		t.Fatalf("expected a b c, got %v", order)
	}
	if !fake.Now().Equal(start.Add(2500 * time.Millisecond)) {
		t.Fatalf("unexpected now %s", fake.Now())
	}
	if fake.Pending() != 0 {
		t.Fatalf("expected no pending timers, got %d", fake.Pending())
	}
}

func TestFakeRunsTimersArmedDuringAdvance(t *testing.T) {
	t.Parallel()
	fake := clock.NewFake(time.Unix(0, 0))
	fired := 0
	var rearm func()
	rearm = func() {
		fired++
		fake.AfterFunc(time.Second, rearm)
	}
	fake.AfterFunc(time.Second, rearm)
	fake.Advance(5 * time.Second)
	if fired != 5 {
		t.Fatalf("expected 5 periodic firings, got %d", fired)
	}
}
