package domain

import (
	"fmt"
	"sort"
	"time"
)

type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateCompleted
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateCompleted:
		return "completed"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Active reports whether the timeline is still open.
func (s State) Active() bool {
	return s == StateRunning || s == StatePaused
}

type MarkKind int

const (
	MarkCue MarkKind = iota
	MarkBrain
)

// Mark is text that becomes visible Offset seconds into a practice.
type Mark struct {
	Kind   MarkKind
	Offset int
	Text   string
}

var brainMessages = []Mark{
	{Kind: MarkBrain, Offset: 30, Text: "⚡ Prefrontal cortex activating..."},
	{Kind: MarkBrain, Offset: 60, Text: "🧠 Default mode network quieting..."},
	{Kind: MarkBrain, Offset: 120, Text: "💪 Attention circuits strengthening!"},
	{Kind: MarkBrain, Offset: 180, Text: "🔗 Neural pathways forming..."},
	{Kind: MarkBrain, Offset: 300, Text: "✨ Focus muscle trained!"},
}

func BrainTrack() []Mark {
	out := make([]Mark, len(brainMessages))
	copy(out, brainMessages)
	return out
}

// Timeline merges tracks into offset order. Marks sharing an offset keep
// their input order, cues before brain messages when passed in that order.
func Timeline(tracks ...[]Mark) []Mark {
	out := []Mark{}
	for _, t := range tracks {
		out = append(out, t...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Offset < out[j].Offset })
	return out
}

type Summary struct {
	// UID identifies the completed practice; retried logs reuse it.
	UID         string
	DrillID     string
	DrillName   string
	Minutes     int
	XPEarned    int
	CompletedAt time.Time
}

func XPEarned(minutes int) int {
	return minutes * 10
}

// FormatClock renders seconds as MM:SS. Minutes are not wrapped at 60.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
