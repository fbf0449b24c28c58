package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"focusflow/internal/modules/session/domain"

	_ "modernc.org/sqlite"
)

const timestampLayout = time.RFC3339

type SQLiteSessionStore struct {
	db *sql.DB
}

func NewSQLiteSessionStore(dbPath string) (*SQLiteSessionStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Appends count rows for the ordinal; a single connection serializes them.
	db.SetMaxOpenConns(1)
	store := &SQLiteSessionStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteSessionStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteSessionStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  uid TEXT PRIMARY KEY,
  id TEXT NOT NULL UNIQUE,
  seq INTEGER NOT NULL,
  timestamp TEXT NOT NULL,
  day TEXT NOT NULL,
  duration_min INTEGER NOT NULL,
  type TEXT NOT NULL,
  focus_rating INTEGER,
  sentiment TEXT,
  note TEXT
);
CREATE INDEX IF NOT EXISTS sessions_day ON sessions(day);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) List(ctx context.Context) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	out := []domain.Record{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

// Append assigns the record id as {day}-{ordinal} inside the insert
// transaction, so concurrent appends for the same day never share an id.
// A uid that is already stored returns the stored row unchanged.
func (s *SQLiteSessionStore) Append(ctx context.Context, record domain.Record) (domain.Record, error) {
	if err := record.Validate(); err != nil {
		return domain.Record{}, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Record{}, fmt.Errorf("begin append: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := scanRecord(tx.QueryRowContext(ctx, selectColumns+` WHERE uid = ?`, record.UID))
	switch {
	case err == nil:
		return existing, nil
	case !errors.Is(err, sql.ErrNoRows):
		return domain.Record{}, fmt.Errorf("lookup session %s: %w", record.UID, err)
	}

	day := domain.DayKey(record.Timestamp)
	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions WHERE day = ?`, day).Scan(&count); err != nil {
		return domain.Record{}, fmt.Errorf("count sessions for %s: %w", day, err)
	}
	ordinal := count + 1
	for {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM sessions WHERE id = ?`, domain.FormatID(day, ordinal)).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			break
		}
		if err != nil {
			return domain.Record{}, fmt.Errorf("check session id: %w", err)
		}
		ordinal++
	}
	record.ID = domain.FormatID(day, ordinal)

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM sessions`).Scan(&seq); err != nil {
		return domain.Record{}, fmt.Errorf("next session seq: %w", err)
	}
	if err := insert(ctx, tx, record, seq); err != nil {
		return domain.Record{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Record{}, fmt.Errorf("commit append: %w", err)
	}
	return record, nil
}

func (s *SQLiteSessionStore) Replace(ctx context.Context, records []domain.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("reset sessions: %w", err)
	}
	for i, record := range records {
		if err := record.Validate(); err != nil {
			return fmt.Errorf("record %s: %w", record.ID, err)
		}
		if record.ID == "" {
			return fmt.Errorf("record %s: id is required", record.UID)
		}
		if err := insert(ctx, tx, record, int64(i+1)); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

const selectColumns = `
SELECT uid, id, timestamp, duration_min, type, focus_rating, sentiment, note
FROM sessions`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord passes sql.ErrNoRows through unwrapped.
func scanRecord(row rowScanner) (domain.Record, error) {
	var (
		record    domain.Record
		timestamp string
		rating    sql.NullInt64
		sentiment sql.NullString
		note      sql.NullString
	)
	if err := row.Scan(&record.UID, &record.ID, &timestamp, &record.DurationMin, &record.Type, &rating, &sentiment, &note); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Record{}, err
		}
		return domain.Record{}, fmt.Errorf("scan session: %w", err)
	}
	ts, err := time.Parse(timestampLayout, timestamp)
	if err != nil {
		return domain.Record{}, fmt.Errorf("parse session %s timestamp: %w", record.ID, err)
	}
	record.Timestamp = ts
	if rating.Valid {
		v := int(rating.Int64)
		record.FocusRating = &v
	}
	record.Sentiment = domain.Sentiment(sentiment.String)
	record.Note = note.String
	return record, nil
}

func insert(ctx context.Context, tx *sql.Tx, record domain.Record, seq int64) error {
	var rating any
	if record.FocusRating != nil {
		rating = *record.FocusRating
	}
	_, err := tx.ExecContext(ctx, `
INSERT INTO sessions (uid, id, seq, timestamp, day, duration_min, type, focus_rating, sentiment, note)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.UID,
		record.ID,
		seq,
		record.Timestamp.Format(timestampLayout),
		domain.DayKey(record.Timestamp),
		record.DurationMin,
		record.Type,
		rating,
		string(record.Sentiment),
		record.Note,
	)
	if err != nil {
		return fmt.Errorf("insert session %s: %w", record.ID, err)
	}
	return nil
}
