package dto

type StartInput struct {
	DrillID string
	Minutes int
}

type LogInput struct {
	FocusRating *int
	Sentiment   string
	Note        string
}

type LogOutput struct {
	SessionID   string
	DurationMin int
	XPEarned    int
	TotalXP     int
	JournalPath string
}

type SummaryOutput struct {
	DrillID   string
	DrillName string
	Minutes   int
	XPEarned  int
}

type EventKind string

const (
	EventTick     EventKind = "tick"
	EventCue      EventKind = "cue"
	EventBrain    EventKind = "brain"
	EventComplete EventKind = "complete"
)

type Event struct {
	Kind      EventKind
	Remaining int
	Clock     string
	Text      string
	Summary   *SummaryOutput
}

type Snapshot struct {
	State     string
	DrillID   string
	DrillName string
	Minutes   int
	Remaining int
	Clock     string
	Cue       string
	Brain     string
	Pending   *SummaryOutput
}
