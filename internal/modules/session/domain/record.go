package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "focusflow/internal/platform/errors"
)

const SchemaVersion = 1

const (
	MinFocusRating = 1
	MaxFocusRating = 5
)

type Sentiment string

const (
	SentimentNone       Sentiment = ""
	SentimentCalm       Sentiment = "calm"
	SentimentFocused    Sentiment = "focused"
	SentimentNeutral    Sentiment = "neutral"
	SentimentRestless   Sentiment = "restless"
	SentimentDistracted Sentiment = "distracted"
)

func Sentiments() []Sentiment {
	return []Sentiment{SentimentCalm, SentimentFocused, SentimentNeutral, SentimentRestless, SentimentDistracted}
}

// ParseSentiment accepts an empty string as "no sentiment".
func ParseSentiment(raw string) (Sentiment, error) {
	value := Sentiment(strings.ToLower(strings.TrimSpace(raw)))
	if value == SentimentNone {
		return SentimentNone, nil
	}
	for _, s := range Sentiments() {
		if s == value {
			return s, nil
		}
	}
	return SentimentNone, fmt.Errorf("%w: %q", apperrors.ErrInvalidSentiment, raw)
}

func ValidateFocusRating(rating *int) error {
	if rating == nil {
		return nil
	}
	if *rating < MinFocusRating || *rating > MaxFocusRating {
		return fmt.Errorf("%w: got %d", apperrors.ErrInvalidRating, *rating)
	}
	return nil
}

// Record is one completed and logged practice.
type Record struct {
	UID         string
	ID          string
	Timestamp   time.Time
	DurationMin int
	Type        string
	FocusRating *int
	Sentiment   Sentiment
	Note        string
}

func (r Record) Validate() error {
	if strings.TrimSpace(r.UID) == "" {
		return fmt.Errorf("%w: record uid is required", apperrors.ErrInvalidInput)
	}
	if r.Timestamp.IsZero() {
		return fmt.Errorf("%w: record timestamp is required", apperrors.ErrInvalidInput)
	}
	if r.DurationMin < 0 {
		return fmt.Errorf("%w: duration must be non-negative", apperrors.ErrInvalidInput)
	}
	if err := ValidateFocusRating(r.FocusRating); err != nil {
		return err
	}
	if _, err := ParseSentiment(string(r.Sentiment)); err != nil {
		return err
	}
	return nil
}

// DayKey is the local calendar day of t, formatted YYYYMMDD.
func DayKey(t time.Time) string {
	return t.Format("20060102")
}

func FormatID(day string, ordinal int) string {
	return fmt.Sprintf("%s-%d", day, ordinal)
}
