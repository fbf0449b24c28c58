package apperrors

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrInvalidDuration   = errors.New("duration must be a positive number of minutes")
	ErrInvalidTransition = errors.New("invalid timer transition")
	ErrNoPendingSession  = errors.New("no completed practice awaiting confirmation")
	ErrPracticeActive    = errors.New("practice already in progress")
	ErrNoActivePractice  = errors.New("no active practice")
	ErrInvalidRating     = errors.New("focus rating must be between 1 and 5")
	ErrInvalidSentiment  = errors.New("unknown sentiment")
)
