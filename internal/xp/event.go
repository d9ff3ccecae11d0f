package xp

import (
	"time"

	"github.com/2beens/fitxp/internal/docstore"
)

const EventsCollection = "xp_events"

// EventType can be one of:
//   - LOG_ENTRY
//   - HIT_GOAL
//   - REVERSAL
//   - WEIGHT_LOG
//   - STREAK
//   - PRESTIGE
type EventType string

const (
	EventTypeLogEntry  EventType = "LOG_ENTRY"
	EventTypeHitGoal   EventType = "HIT_GOAL"
	EventTypeReversal  EventType = "REVERSAL"
	EventTypeWeightLog EventType = "WEIGHT_LOG"
	EventTypeStreak    EventType = "STREAK"
	EventTypePrestige  EventType = "PRESTIGE"
)

func (et EventType) String() string {
	return string(et)
}

func (et EventType) IsValid() bool {
	switch et {
	case EventTypeLogEntry,
		EventTypeHitGoal,
		EventTypeReversal,
		EventTypeWeightLog,
		EventTypeStreak,
		EventTypePrestige:
		return true
	default:
		return false
	}
}

// Reversal reasons.
const (
	ReasonEntryDeleted    = "entry_deleted"
	ReasonWeightDeleted   = "weight_deleted"
	ReasonGoalNoLongerMet = "goal_no_longer_met"
)

// Meta is the small payload an event carries; only the fields relevant to
// the event type are set.
type Meta struct {
	EntryID  string `json:"entryId,omitempty"`
	WeightID string `json:"weightId,omitempty"`
	Date     string `json:"date,omitempty"`
	Reason   string `json:"reason,omitempty"`
	From     *int   `json:"from,omitempty"`
	To       *int   `json:"to,omitempty"`
}

// Event (ledger level type) is an immutable record of one xp-affecting action.
type Event struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      EventType `json:"eventType"`
	Amount    int       `json:"amount"`
	Meta      Meta      `json:"meta"`
	CreatedAt time.Time `json:"createdAt"`
}

// MetaKey identifies the entity or day a deduplicated event is about.
// Exactly one field is expected to be set.
type MetaKey struct {
	EntryID  string
	WeightID string
	Date     string
}

func DateKey(date string) MetaKey {
	return MetaKey{Date: date}
}

func EntryKey(entryID string) MetaKey {
	return MetaKey{EntryID: entryID}
}

func WeightKey(weightID string) MetaKey {
	return MetaKey{WeightID: weightID}
}

func (k MetaKey) IsZero() bool {
	return k.EntryID == "" && k.WeightID == "" && k.Date == ""
}

// Matches reports whether every set key field equals the same field in m.
func (k MetaKey) Matches(m Meta) bool {
	if k.IsZero() {
		return false
	}
	if k.EntryID != "" && k.EntryID != m.EntryID {
		return false
	}
	if k.WeightID != "" && k.WeightID != m.WeightID {
		return false
	}
	if k.Date != "" && k.Date != m.Date {
		return false
	}
	return true
}

func (m Meta) toFields() docstore.Fields {
	f := docstore.Fields{}
	if m.EntryID != "" {
		f["entryId"] = m.EntryID
	}
	if m.WeightID != "" {
		f["weightId"] = m.WeightID
	}
	if m.Date != "" {
		f["date"] = m.Date
	}
	if m.Reason != "" {
		f["reason"] = m.Reason
	}
	if m.From != nil {
		f["from"] = *m.From
	}
	if m.To != nil {
		f["to"] = *m.To
	}
	return f
}

func metaFromFields(f docstore.Fields) Meta {
	m := Meta{
		EntryID:  f.String("entryId"),
		WeightID: f.String("weightId"),
		Date:     f.String("date"),
		Reason:   f.String("reason"),
	}
	if _, ok := f.Float("from"); ok {
		from := f.Int("from", 0)
		m.From = &from
	}
	if _, ok := f.Float("to"); ok {
		to := f.Int("to", 0)
		m.To = &to
	}
	return m
}

func eventFromDocument(doc *docstore.Document) (*Event, bool) {
	eventType := EventType(doc.Fields.String("eventType"))
	userID := doc.Fields.String("userId")
	if !eventType.IsValid() || userID == "" {
		return nil, false
	}
	return &Event{
		ID:        doc.ID,
		UserID:    userID,
		Type:      eventType,
		Amount:    doc.Fields.Int("amount", 0),
		Meta:      metaFromFields(docstore.Fields(doc.Fields.Map("meta"))),
		CreatedAt: doc.CreatedAt,
	}, true
}
