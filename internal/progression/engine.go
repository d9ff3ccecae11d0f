package progression

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/2beens/fitxp/internal/calendar"
	"github.com/2beens/fitxp/internal/profile"
	"github.com/2beens/fitxp/internal/telemetry/metrics"
	"github.com/2beens/fitxp/internal/telemetry/tracing"
	"github.com/2beens/fitxp/internal/xp"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	LogEntryXp    = 5
	WeightLogXp   = 5
	DailyGoalXp   = 50
	StreakBonusXp = 5

	// StreakBonusThreshold is the streak length from which a day earns the bonus.
	StreakBonusThreshold = 3
	// goalTolerance is the allowed relative distance of the day total from the goal.
	goalTolerance = 0.05
)

var (
	ErrMaxPrestige         = errors.New("already at max prestige")
	ErrPrestigeNotEligible = errors.New("level cap not reached yet, cannot prestige")
)

// ProfileStore loads and patches the per-user profile. GetByUserID returns
// nil, nil when the user has none.
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID string) (*profile.Profile, error)
	Update(ctx context.Context, userID string, patch profile.Patch) (*profile.Profile, error)
}

// DailyCalories sums the calories of all the user's food entries on date.
type DailyCalories interface {
	DayCalories(ctx context.Context, userID, date string) (float64, error)
}

type StreakCalculator interface {
	ComputeStreak(ctx context.Context, userID, asOf string) (int, error)
}

// Outcome describes what an engine operation did. Profile is nil when the
// user has no profile and the operation was skipped.
type Outcome struct {
	Applied bool             `json:"applied"`
	Delta   int              `json:"delta"`
	Profile *profile.Profile `json:"profile,omitempty"`
}

// Engine turns domain events (entry logged, weight deleted, ...) into ledger
// events and profile xp/level changes. Every operation records its ledger
// event before it writes the profile.
type Engine struct {
	profiles       ProfileStore
	ledger         *xp.Ledger
	streaks        StreakCalculator
	calories       DailyCalories
	metricsManager *metrics.Manager
}

func NewEngine(
	profiles ProfileStore,
	ledger *xp.Ledger,
	streaks StreakCalculator,
	calories DailyCalories,
	metricsManager *metrics.Manager,
) *Engine {
	return &Engine{
		profiles:       profiles,
		ledger:         ledger,
		streaks:        streaks,
		calories:       calories,
		metricsManager: metricsManager,
	}
}

// GrantLogEntry gives +5 for a created food entry. Not deduplicated: every
// creation is its own grant.
func (e *Engine) GrantLogEntry(ctx context.Context, userID, entryID string) (_ Outcome, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progression.grant_log_entry")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("entry_id", entryID))

	p, err := e.profiles.GetByUserID(ctx, userID)
	if err != nil || p == nil {
		return Outcome{}, err
	}

	return e.applyDelta(ctx, p, LogEntryXp, xp.EventTypeLogEntry, xp.Meta{EntryID: entryID})
}

// RevokeLogEntry takes back the +5 of a deleted food entry, once per entry.
func (e *Engine) RevokeLogEntry(ctx context.Context, userID, entryID string) (_ Outcome, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progression.revoke_log_entry")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("entry_id", entryID))

	return e.revokeOnce(ctx, userID, -LogEntryXp, xp.EntryKey(entryID), xp.Meta{
		EntryID: entryID,
		Reason:  xp.ReasonEntryDeleted,
	})
}

// GrantWeightLog gives +5 for a created weight entry, once per weight id.
func (e *Engine) GrantWeightLog(ctx context.Context, userID, weightID string) (_ Outcome, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progression.grant_weight_log")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("weight_id", weightID))

	p, err := e.profiles.GetByUserID(ctx, userID)
	if err != nil || p == nil {
		return Outcome{}, err
	}

	granted, err := e.ledger.HasEventForKey(ctx, userID, xp.EventTypeWeightLog, xp.WeightKey(weightID))
	if err != nil {
		return Outcome{}, err
	}
	if granted {
		return Outcome{Profile: p}, nil
	}

	return e.applyDelta(ctx, p, WeightLogXp, xp.EventTypeWeightLog, xp.Meta{WeightID: weightID})
}

// RevokeWeightLog takes back the +5 of a deleted weight entry, once per weight id.
func (e *Engine) RevokeWeightLog(ctx context.Context, userID, weightID string) (_ Outcome, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progression.revoke_weight_log")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("weight_id", weightID))

	return e.revokeOnce(ctx, userID, -WeightLogXp, xp.WeightKey(weightID), xp.Meta{
		WeightID: weightID,
		Reason:   xp.ReasonWeightDeleted,
	})
}

// SyncDailyGoalBonus re-evaluates the +50 daily goal bonus for date against
// the current day total: granted when the total is within 5% of the goal,
// revoked when it no longer is.
func (e *Engine) SyncDailyGoalBonus(ctx context.Context, userID, date string) (_ Outcome, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progression.sync_daily_goal")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	day := calendar.DatePart(date)
	if !calendar.IsValid(day) {
		return Outcome{}, fmt.Errorf("sync daily goal: invalid date %q", date)
	}
	span.SetAttributes(attribute.String("date", day))

	p, err := e.profiles.GetByUserID(ctx, userID)
	if err != nil || p == nil {
		return Outcome{}, err
	}

	total, err := e.calories.DayCalories(ctx, userID, day)
	if err != nil {
		return Outcome{}, fmt.Errorf("day calories: %w", err)
	}
	within := WithinGoal(total, p.CalorieGoal)

	granted, err := e.ledger.GoalBonusActive(ctx, userID, day)
	if err != nil {
		return Outcome{}, err
	}

	switch {
	case within && !granted:
		return e.applyDelta(ctx, p, DailyGoalXp, xp.EventTypeHitGoal, xp.Meta{Date: day})
	case !within && granted:
		return e.applyDelta(ctx, p, -DailyGoalXp, xp.EventTypeReversal, xp.Meta{
			Date:   day,
			Reason: xp.ReasonGoalNoLongerMet,
		})
	default:
		return Outcome{Profile: p}, nil
	}
}

// SyncStreakAndBonus stores the fresh streak on the profile and, once per
// date, grants +5 when the streak is at least 3. The bonus is never revoked.
func (e *Engine) SyncStreakAndBonus(ctx context.Context, userID, date string) (_ Outcome, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progression.sync_streak")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	day := calendar.DatePart(date)
	if !calendar.IsValid(day) {
		return Outcome{}, fmt.Errorf("sync streak: invalid date %q", date)
	}
	span.SetAttributes(attribute.String("date", day))

	p, err := e.profiles.GetByUserID(ctx, userID)
	if err != nil || p == nil {
		return Outcome{}, err
	}

	streakLen, err := e.streaks.ComputeStreak(ctx, userID, day)
	if err != nil {
		return Outcome{}, err
	}
	span.SetAttributes(attribute.Int("streak", streakLen))

	p, err = e.profiles.Update(ctx, userID, profile.Patch{Streak: &streakLen})
	if err != nil {
		return Outcome{}, fmt.Errorf("update streak: %w", err)
	}

	if streakLen < StreakBonusThreshold {
		return Outcome{Profile: p}, nil
	}

	granted, err := e.ledger.HasEventForKey(ctx, userID, xp.EventTypeStreak, xp.DateKey(day))
	if err != nil {
		return Outcome{}, err
	}
	if granted {
		return Outcome{Profile: p}, nil
	}

	return e.applyDelta(ctx, p, StreakBonusXp, xp.EventTypeStreak, xp.Meta{Date: day})
}

// DoPrestige resets level and xp and moves the user one prestige tier up.
// The user must be at the level cap of the current tier.
func (e *Engine) DoPrestige(ctx context.Context, userID string) (_ Outcome, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progression.prestige")
	defer func() {
		if errors.Is(err, ErrMaxPrestige) || errors.Is(err, ErrPrestigeNotEligible) {
			span.End()
			return
		}
		tracing.EndSpanWithErrCheck(span, err)
	}()

	p, err := e.profiles.GetByUserID(ctx, userID)
	if err != nil || p == nil {
		return Outcome{}, err
	}

	from := p.Prestige
	if from >= xp.MaxPrestige {
		return Outcome{}, ErrMaxPrestige
	}
	if p.Level < xp.LevelCapFor(from) {
		return Outcome{}, fmt.Errorf("%w: level %d of %d", ErrPrestigeNotEligible, p.Level, xp.LevelCapFor(from))
	}
	to := from + 1

	if _, err := e.ledger.RecordEvent(ctx, userID, xp.EventTypePrestige, 0, xp.Meta{From: &from, To: &to}); err != nil {
		return Outcome{}, fmt.Errorf("record event: %w", err)
	}
	e.metricsManager.CounterXpEvents.WithLabelValues(xp.EventTypePrestige.String()).Inc()

	level, zero := 1, 0
	updated, err := e.profiles.Update(ctx, userID, profile.Patch{
		Level:    &level,
		XP:       &zero,
		Prestige: &to,
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("update profile: %w", err)
	}
	e.metricsManager.CounterPrestiges.Inc()

	log.Infof("progression: user [%s] prestiged %d -> %d", userID, from, to)
	return Outcome{Applied: true, Profile: updated}, nil
}

// WithinGoal tells if total is within 5% of a positive goal.
func WithinGoal(total float64, goal int) bool {
	if goal <= 0 {
		return false
	}
	return math.Abs(total-float64(goal)) <= float64(goal)*goalTolerance
}

func (e *Engine) revokeOnce(ctx context.Context, userID string, delta int, key xp.MetaKey, meta xp.Meta) (Outcome, error) {
	p, err := e.profiles.GetByUserID(ctx, userID)
	if err != nil || p == nil {
		return Outcome{}, err
	}

	revoked, err := e.ledger.HasEventForKey(ctx, userID, xp.EventTypeReversal, key)
	if err != nil {
		return Outcome{}, err
	}
	if revoked {
		log.Debugf("progression: reversal for %+v already recorded, skipping", key)
		return Outcome{Profile: p}, nil
	}

	return e.applyDelta(ctx, p, delta, xp.EventTypeReversal, meta)
}

// applyDelta runs the shared micro-protocol: compute the capped progress,
// record the ledger event, then persist level and xp.
func (e *Engine) applyDelta(ctx context.Context, p *profile.Profile, delta int, eventType xp.EventType, meta xp.Meta) (Outcome, error) {
	next := xp.CapProgress(xp.ApplyXpDelta(p.Level, p.XP, delta), p.Prestige)

	if _, err := e.ledger.RecordEvent(ctx, p.UserID, eventType, delta, meta); err != nil {
		return Outcome{}, fmt.Errorf("record event: %w", err)
	}
	e.metricsManager.CounterXpEvents.WithLabelValues(eventType.String()).Inc()

	updated, err := e.profiles.Update(ctx, p.UserID, profile.Patch{
		Level: &next.Level,
		XP:    &next.XP,
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("update profile: %w", err)
	}

	if delta >= 0 {
		e.metricsManager.CounterXpGranted.Add(float64(delta))
	} else {
		e.metricsManager.CounterXpRevoked.Add(float64(-delta))
	}
	if gained := next.Level - p.Level; gained > 0 {
		e.metricsManager.CounterLevelUps.Add(float64(gained))
		log.Debugf("progression: user [%s] reached level %d", p.UserID, next.Level)
	}

	return Outcome{
		Applied: true,
		Delta:   delta,
		Profile: updated,
	}, nil
}
