package xp

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitxp/internal/docstore"
	"github.com/2beens/fitxp/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// DefaultScanLimit is how many recent events of one type are checked for a
// matching key.
const DefaultScanLimit = docstore.MaxLimit

var ErrInvalidEventType = errors.New("invalid xp event type")

// Ledger is the append-only log of xp events. It also answers the "did this
// already happen" question that keeps grants idempotent.
type Ledger struct {
	store     docstore.Store
	scanLimit int
}

func NewLedger(store docstore.Store, scanLimit int) *Ledger {
	if scanLimit <= 0 || scanLimit > docstore.MaxLimit {
		scanLimit = DefaultScanLimit
	}
	return &Ledger{
		store:     store,
		scanLimit: scanLimit,
	}
}

// HasEventForKey reports whether the user has an event of the given type
// whose meta matches key. Only the newest scanLimit events of that type are
// considered, so very old events fall out of the window.
func (l *Ledger) HasEventForKey(ctx context.Context, userID string, eventType EventType, key MetaKey) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "xp.ledger.has_event")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("event_type", eventType.String()))

	events, err := l.eventsOfType(ctx, userID, eventType, l.scanLimit)
	if err != nil {
		return false, err
	}
	for _, e := range events {
		if key.Matches(e.Meta) {
			return true, nil
		}
	}
	return false, nil
}

// GoalBonusActive tells if the HIT_GOAL bonus for date is currently in
// effect: more HIT_GOAL grants than goal_no_longer_met reversals for it.
func (l *Ledger) GoalBonusActive(ctx context.Context, userID, date string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "xp.ledger.goal_bonus_active")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	key := DateKey(date)
	grants, err := l.countMatching(ctx, userID, EventTypeHitGoal, key, "")
	if err != nil {
		return false, err
	}
	if grants == 0 {
		return false, nil
	}
	reversals, err := l.countMatching(ctx, userID, EventTypeReversal, key, ReasonGoalNoLongerMet)
	if err != nil {
		return false, err
	}
	return grants > reversals, nil
}

// RecordEvent appends one event; it is visible to lookups right after.
func (l *Ledger) RecordEvent(ctx context.Context, userID string, eventType EventType, amount int, meta Meta) (_ *Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "xp.ledger.record")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("event_type", eventType.String()),
		attribute.Int("amount", amount),
	)

	if !eventType.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEventType, eventType)
	}
	if userID == "" {
		return nil, errors.New("record event: empty user id")
	}

	doc, err := l.store.Create(ctx, EventsCollection, "", docstore.Fields{
		"userId":    userID,
		"eventType": eventType.String(),
		"amount":    amount,
		"meta":      map[string]any(meta.toFields()),
	}, docstore.OwnerPermissions(userID))
	if err != nil {
		return nil, fmt.Errorf("create xp event: %w", err)
	}

	event, ok := eventFromDocument(doc)
	if !ok {
		return nil, fmt.Errorf("stored xp event %s is malformed", doc.ID)
	}
	return event, nil
}

// List returns the user's events newest first.
func (l *Ledger) List(ctx context.Context, userID string, limit int) (_ []*Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "xp.ledger.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	docs, err := l.store.Query(ctx, EventsCollection, docstore.Query{
		Filters: []docstore.Filter{docstore.Equal("userId", userID)},
		OrderBy: docstore.OrderDesc(docstore.CreatedAtField),
		Limit:   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("query xp events: %w", err)
	}
	return toEvents(docs), nil
}

func (l *Ledger) eventsOfType(ctx context.Context, userID string, eventType EventType, limit int) ([]*Event, error) {
	docs, err := l.store.Query(ctx, EventsCollection, docstore.Query{
		Filters: []docstore.Filter{
			docstore.Equal("userId", userID),
			docstore.Equal("eventType", eventType.String()),
		},
		OrderBy: docstore.OrderDesc(docstore.CreatedAtField),
		Limit:   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("query %s events: %w", eventType, err)
	}
	return toEvents(docs), nil
}

func (l *Ledger) countMatching(ctx context.Context, userID string, eventType EventType, key MetaKey, reason string) (int, error) {
	events, err := l.eventsOfType(ctx, userID, eventType, l.scanLimit)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, e := range events {
		if !key.Matches(e.Meta) {
			continue
		}
		if reason != "" && e.Meta.Reason != reason {
			continue
		}
		count++
	}
	return count, nil
}

// toEvents skips documents that do not look like xp events.
func toEvents(docs []*docstore.Document) []*Event {
	events := make([]*Event, 0, len(docs))
	for _, doc := range docs {
		if e, ok := eventFromDocument(doc); ok {
			events = append(events, e)
		}
	}
	return events
}
