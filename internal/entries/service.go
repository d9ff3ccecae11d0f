package entries

import (
	"context"
	"fmt"

	"github.com/2beens/fitxp/internal/calendar"
	"github.com/2beens/fitxp/internal/progression"
	"github.com/2beens/fitxp/internal/telemetry/metrics"
	"github.com/2beens/fitxp/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=entries_test

type progressionEngine interface {
	GrantLogEntry(ctx context.Context, userID, entryID string) (progression.Outcome, error)
	RevokeLogEntry(ctx context.Context, userID, entryID string) (progression.Outcome, error)
	SyncDailyGoalBonus(ctx context.Context, userID, date string) (progression.Outcome, error)
	SyncStreakAndBonus(ctx context.Context, userID, date string) (progression.Outcome, error)
}

// Service logs, edits and deletes food entries and keeps xp, goal bonus and
// streak in step with every change.
type Service struct {
	repo           *Repo
	engine         progressionEngine
	metricsManager *metrics.Manager
}

func NewService(repo *Repo, engine progressionEngine, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		engine:         engine,
		metricsManager: metricsManager,
	}
}

func (s *Service) Add(ctx context.Context, userID string, params AddParams) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.entries.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	params.Date = calendar.DatePart(params.Date)
	entry, err := s.repo.Add(ctx, userID, params)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("entry_id", entry.ID))
	s.metricsManager.CounterEntries.Inc()

	if _, err := s.engine.GrantLogEntry(ctx, userID, entry.ID); err != nil {
		return nil, fmt.Errorf("grant log entry xp: %w", err)
	}
	if err := s.syncDay(ctx, userID, entry.Date); err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *Service) Update(ctx context.Context, userID, id string, patch Patch) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.entries.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("entry_id", id))

	if _, err := s.owned(ctx, userID, id); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidEntry)
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if err := s.syncDay(ctx, userID, updated.Date); err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.entries.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("entry_id", id))

	entry, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if _, err := s.engine.RevokeLogEntry(ctx, userID, id); err != nil {
		return fmt.Errorf("revoke log entry xp: %w", err)
	}
	return s.syncDay(ctx, userID, entry.Date)
}

func (s *Service) ListByDate(ctx context.Context, userID, date string) ([]*Entry, error) {
	if !calendar.IsValid(date) {
		return nil, fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidEntry, date)
	}
	return s.repo.ListByDate(ctx, userID, date)
}

func (s *Service) DayTotals(ctx context.Context, userID, date string) (Totals, error) {
	entries, err := s.ListByDate(ctx, userID, date)
	if err != nil {
		return Totals{}, err
	}
	return SumTotals(date, entries), nil
}

// owned loads the entry and hides entries of other users as not found.
func (s *Service) owned(ctx context.Context, userID, id string) (*Entry, error) {
	entry, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		log.Warnf("entries: user [%s] tried to touch entry [%s] of another user", userID, id)
		return nil, ErrEntryNotFound
	}
	return entry, nil
}

// syncDay re-evaluates the goal bonus and then the streak for date.
func (s *Service) syncDay(ctx context.Context, userID, date string) error {
	if _, err := s.engine.SyncDailyGoalBonus(ctx, userID, date); err != nil {
		return fmt.Errorf("sync daily goal bonus: %w", err)
	}
	if _, err := s.engine.SyncStreakAndBonus(ctx, userID, date); err != nil {
		return fmt.Errorf("sync streak: %w", err)
	}
	return nil
}
