package domain

import (
	"sort"
	"time"
)

type day struct {
	year  int
	month time.Month
	date  int
}

func dayOf(t time.Time, loc *time.Location) day {
	y, m, d := t.In(loc).Date()
	return day{y, m, d}
}

func (d day) addDays(n int, loc *time.Location) day {
	return dayOf(time.Date(d.year, d.month, d.date+n, 12, 0, 0, 0, loc), loc)
}

func (d day) before(o day) bool {
	if d.year != o.year {
		return d.year < o.year
	}
	if d.month != o.month {
		return d.month < o.month
	}
	return d.date < o.date
}

// ComputeStreak counts consecutive calendar days with at least one session,
// walking back from today in today's location. A history with no session
// today yields 0. Sessions dated after today are ignored.
func ComputeStreak(dates []time.Time, today time.Time) int {
	loc := today.Location()
	seen := make(map[day]struct{}, len(dates))
	for _, t := range dates {
		seen[dayOf(t, loc)] = struct{}{}
	}
	streak := 0
	cursor := dayOf(today, loc)
	for {
		if _, ok := seen[cursor]; !ok {
			return streak
		}
		streak++
		cursor = cursor.addDays(-1, loc)
	}
}

// LongestStreak is the longest run of consecutive days in dates.
func LongestStreak(dates []time.Time, loc *time.Location) int {
	if len(dates) == 0 {
		return 0
	}
	seen := map[day]struct{}{}
	days := make([]day, 0, len(dates))
	for _, t := range dates {
		d := dayOf(t, loc)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].before(days[j]) })

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i-1].addDays(1, loc) == days[i] {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

type Entry struct {
	Timestamp time.Time
	Minutes   int
}

// WeekStart is 00:00 of the most recent Sunday in now's location.
func WeekStart(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d-int(now.Weekday()), 0, 0, 0, 0, now.Location())
}

// WeeklyMinutes sums the minutes of entries at or after WeekStart(now).
func WeeklyMinutes(entries []Entry, now time.Time) int {
	start := WeekStart(now)
	total := 0
	for _, e := range entries {
		if !e.Timestamp.Before(start) {
			total += e.Minutes
		}
	}
	return total
}
