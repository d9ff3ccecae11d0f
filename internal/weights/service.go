package weights

import (
	"context"
	"fmt"

	"github.com/2beens/fitxp/internal/calendar"
	"github.com/2beens/fitxp/internal/progression"
	"github.com/2beens/fitxp/internal/telemetry/metrics"
	"github.com/2beens/fitxp/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=weights_test

type progressionEngine interface {
	GrantWeightLog(ctx context.Context, userID, weightID string) (progression.Outcome, error)
	RevokeWeightLog(ctx context.Context, userID, weightID string) (progression.Outcome, error)
}

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

// Add logs a weight and grants its +5 xp.
func (s *Service) Add(ctx context.Context, userID string, params AddParams) (_ *Weight, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.weights.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	params.Date = calendar.DatePart(params.Date)
	weight, err := s.repo.Add(ctx, userID, params)
	if err != nil {
		return nil, err
	}
	s.metricsManager.CounterWeights.Inc()

	if _, err := s.engine.GrantWeightLog(ctx, userID, weight.ID); err != nil {
		return nil, fmt.Errorf("grant weight log xp: %w", err)
	}
	return weight, nil
}

// UpdateWeight changes the value only; xp is not affected.
func (s *Service) UpdateWeight(ctx context.Context, userID, id string, value float64) (*Weight, error) {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return nil, err
	}
	return s.repo.UpdateWeight(ctx, id, value)
}

func (s *Service) Delete(ctx context.Context, userID, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.weights.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if _, err := s.engine.RevokeWeightLog(ctx, userID, id); err != nil {
		return fmt.Errorf("revoke weight log xp: %w", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID string, limit int) ([]*Weight, error) {
	return s.repo.List(ctx, userID, limit)
}

func (s *Service) GetByDate(ctx context.Context, userID, date string) (*Weight, error) {
	if !calendar.IsValid(date) {
		return nil, fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidWeight, date)
	}
	return s.repo.GetByDate(ctx, userID, date)
}

func (s *Service) owned(ctx context.Context, userID, id string) (*Weight, error) {
	weight, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if weight.UserID != userID {
		log.Warnf("weights: user [%s] tried to touch weight [%s] of another user", userID, id)
		return nil, ErrWeightNotFound
	}
	return weight, nil
}
