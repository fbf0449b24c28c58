package dto

import "time"

type LogInput struct {
	// UID identifies the practice being logged. Logging the same UID again
	// reuses the stored record instead of appending a second one.
	UID         string
	DrillType   string
	DurationMin int
	FocusRating *int
	Sentiment   string
	Note        string
	XPEarned    int
}

type LogOutput struct {
	Session     SessionOutput
	XPEarned    int
	TotalXP     int
	JournalPath string
}

type SessionOutput struct {
	ID          string
	UID         string
	Timestamp   time.Time
	DurationMin int
	Type        string
	FocusRating *int
	Sentiment   string
	Note        string
}

type PreferencesOutput struct {
	Theme           string
	Environment     string
	MusicEnabled    bool
	BrainVizEnabled bool
	TotalXP         int
}

type ReindexOutput struct {
	Sessions int
}
