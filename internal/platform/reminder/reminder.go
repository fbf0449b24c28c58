// Package reminder turns a cron spec into daily practice nudges.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Schedule is a parsed reminder spec. The zero value is disabled.
type Schedule struct {
	spec  string
	sched cron.Schedule
}

func Parse(spec string) (Schedule, error) {
	if spec == "" {
		return Schedule{}, nil
	}
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return Schedule{}, fmt.Errorf("parse reminder %q: %w", spec, err)
	}
	return Schedule{spec: spec, sched: sched}, nil
}

func (s Schedule) Enabled() bool { return s.sched != nil }

func (s Schedule) Spec() string { return s.spec }

// Next returns the first activation strictly after now.
func (s Schedule) Next(now time.Time) (time.Time, bool) {
	if s.sched == nil {
		return time.Time{}, false
	}
	return s.sched.Next(now), true
}

// Run invokes fn at every activation until ctx is cancelled.
func Run(ctx context.Context, s Schedule, loc *time.Location, fn func(time.Time)) error {
	if !s.Enabled() {
		return fmt.Errorf("reminder schedule is not configured")
	}
	if loc == nil {
		loc = time.Local
	}
	c := cron.New(cron.WithLocation(loc))
	c.Schedule(s.sched, cron.FuncJob(func() { fn(time.Now().In(loc)) }))
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
