package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"focusflow/internal/modules/session/domain"
	sessiondto "focusflow/internal/modules/session/dto"
	sessionin "focusflow/internal/modules/session/port/in"
	"focusflow/internal/modules/session/service"
	apperrors "focusflow/internal/platform/errors"
	"focusflow/internal/platform/tx"
)

type Interactor struct {
	sessions *service.SessionService
	prefs    *service.PreferencesService
	txm      tx.Manager
	logger   *zap.Logger
}

func NewInteractor(sessions *service.SessionService, prefs *service.PreferencesService, txm tx.Manager, logger *zap.Logger) sessionin.Usecase {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	return &Interactor{sessions: sessions, prefs: prefs, txm: txm, logger: logger}
}

func (i *Interactor) ValidateFeedback(input sessiondto.LogInput) error {
	_, err := parseFeedback(input)
	return err
}

func parseFeedback(input sessiondto.LogInput) (domain.Sentiment, error) {
	if err := domain.ValidateFocusRating(input.FocusRating); err != nil {
		return domain.SentimentNone, err
	}
	return domain.ParseSentiment(input.Sentiment)
}

func (i *Interactor) LogSession(ctx context.Context, input sessiondto.LogInput) (sessiondto.LogOutput, error) {
	if input.DurationMin <= 0 {
		return sessiondto.LogOutput{}, apperrors.ErrInvalidDuration
	}
	if input.XPEarned < 0 {
		return sessiondto.LogOutput{}, fmt.Errorf("%w: xp earned must be non-negative", apperrors.ErrInvalidInput)
	}
	sentiment, err := parseFeedback(input)
	if err != nil {
		return sessiondto.LogOutput{}, err
	}

	out := sessiondto.LogOutput{XPEarned: input.XPEarned}
	err = i.txm.Within(ctx, func(ctx context.Context) error {
		record, path, err := i.sessions.Record(ctx, service.RecordInput{
			UID:         input.UID,
			Type:        input.DrillType,
			DurationMin: input.DurationMin,
			FocusRating: input.FocusRating,
			Sentiment:   sentiment,
			Note:        input.Note,
		})
		if err != nil {
			return err
		}
		prefs, err := i.prefs.Update(ctx, func(p *domain.Preferences) error {
			p.TotalXP += input.XPEarned
			return nil
		})
		if err != nil {
			return err
		}
		out.Session = toSessionOutput(record)
		out.JournalPath = path
		out.TotalXP = prefs.TotalXP
		return nil
	})
	if err != nil {
		return sessiondto.LogOutput{}, err
	}
	i.logger.Info("session logged",
		zap.String("session", out.Session.ID),
		zap.Int("duration_min", out.Session.DurationMin),
		zap.Int("xp_earned", out.XPEarned),
		zap.Int("total_xp", out.TotalXP),
	)
	return out, nil
}

// ListSessions degrades to an empty history when the store cannot be read.
func (i *Interactor) ListSessions(ctx context.Context) ([]sessiondto.SessionOutput, error) {
	records, err := i.sessions.List(ctx)
	if err != nil {
		i.logger.Warn("session history unavailable", zap.Error(err))
		return []sessiondto.SessionOutput{}, nil
	}
	out := make([]sessiondto.SessionOutput, 0, len(records))
	for _, r := range records {
		out = append(out, toSessionOutput(r))
	}
	return out, nil
}

func (i *Interactor) Reindex(ctx context.Context) (sessiondto.ReindexOutput, error) {
	n, err := i.sessions.Reindex(ctx)
	if err != nil {
		return sessiondto.ReindexOutput{}, err
	}
	i.logger.Info("sessions reindexed", zap.Int("sessions", n))
	return sessiondto.ReindexOutput{Sessions: n}, nil
}

func toSessionOutput(r domain.Record) sessiondto.SessionOutput {
	return sessiondto.SessionOutput{
		ID:          r.ID,
		UID:         r.UID,
		Timestamp:   r.Timestamp,
		DurationMin: r.DurationMin,
		Type:        r.Type,
		FocusRating: r.FocusRating,
		Sentiment:   string(r.Sentiment),
		Note:        r.Note,
	}
}
