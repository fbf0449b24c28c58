package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"focusflow/internal/modules/session/domain"
	sessionout "focusflow/internal/modules/session/port/out"
	"focusflow/internal/platform/clock"
	"focusflow/internal/platform/id"
)

type RecordInput struct {
	// UID is generated when empty.
	UID         string
	Type        string
	DurationMin int
	FocusRating *int
	Sentiment   domain.Sentiment
	Note        string
}

type SessionService struct {
	clock   clock.Clock
	idGen   id.Generator
	store   sessionout.SessionStore
	journal sessionout.Journal
	logger  *zap.Logger
}

// NewSessionService accepts a nil journal when markdown notes are disabled.
func NewSessionService(clock clock.Clock, idGen id.Generator, store sessionout.SessionStore, journal sessionout.Journal, logger *zap.Logger) *SessionService {
	return &SessionService{clock: clock, idGen: idGen, store: store, journal: journal, logger: logger}
}

// Record appends a session and mirrors it into the journal. The store is
// the source of truth; a journal failure is logged, not returned.
func (s *SessionService) Record(ctx context.Context, input RecordInput) (domain.Record, string, error) {
	uid := input.UID
	if uid == "" {
		uid = s.idGen.New()
	}
	record := domain.Record{
		UID:         uid,
		Timestamp:   s.clock.Now(),
		DurationMin: input.DurationMin,
		Type:        input.Type,
		FocusRating: input.FocusRating,
		Sentiment:   input.Sentiment,
		Note:        input.Note,
	}
	saved, err := s.store.Append(ctx, record)
	if err != nil {
		return domain.Record{}, "", fmt.Errorf("append session: %w", err)
	}
	if s.journal == nil {
		return saved, "", nil
	}
	path, err := s.journal.Write(ctx, saved)
	if err != nil {
		s.logger.Warn("journal note not written", zap.String("session", saved.ID), zap.Error(err))
		return saved, "", nil
	}
	return saved, path, nil
}

func (s *SessionService) List(ctx context.Context) ([]domain.Record, error) {
	return s.store.List(ctx)
}

// Reindex rebuilds the session table from journal notes.
func (s *SessionService) Reindex(ctx context.Context) (int, error) {
	if s.journal == nil {
		return 0, fmt.Errorf("journal is disabled")
	}
	records, err := s.journal.List(ctx)
	if err != nil {
		return 0, err
	}
	seen := map[string]bool{}
	unique := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if seen[r.UID] || seen["id:"+r.ID] {
			s.logger.Warn("duplicate journal note skipped", zap.String("session", r.ID), zap.String("uid", r.UID))
			continue
		}
		seen[r.UID] = true
		seen["id:"+r.ID] = true
		unique = append(unique, r)
	}
	if err := s.store.Replace(ctx, unique); err != nil {
		return 0, fmt.Errorf("replace sessions: %w", err)
	}
	return len(unique), nil
}
