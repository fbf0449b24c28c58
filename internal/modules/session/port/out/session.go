package out

import (
	"context"

	"focusflow/internal/modules/session/domain"
)

type SessionStore interface {
	// List returns records in insertion order.
	List(ctx context.Context) ([]domain.Record, error)
	// Append assigns the day-ordinal id and persists the record atomically.
	// Appending a uid that is already stored returns the stored record.
	Append(ctx context.Context, record domain.Record) (domain.Record, error)
	// Replace swaps the full record set, keeping the given order and ids.
	Replace(ctx context.Context, records []domain.Record) error
}

type PreferencesStore interface {
	// Load returns defaults when nothing has been written yet.
	Load(ctx context.Context) (domain.Preferences, error)
	Save(ctx context.Context, prefs domain.Preferences) error
}

type Journal interface {
	Write(ctx context.Context, record domain.Record) (string, error)
	List(ctx context.Context) ([]domain.Record, error)
}
