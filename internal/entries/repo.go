package entries

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitxp/internal/docstore"
	"github.com/2beens/fitxp/internal/telemetry/tracing"
)

// Repo stores food entries as documents. It also serves the streak
// calculator (entry dates) and the progression engine (day calories).
type Repo struct {
	store docstore.Store
}

func NewRepo(store docstore.Store) *Repo {
	return &Repo{
		store: store,
	}
}

func (r *Repo) Add(ctx context.Context, userID string, params AddParams) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.entries.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := params.validate(); err != nil {
		return nil, err
	}

	doc, err := r.store.Create(ctx, Collection, "", params.toFields(userID), docstore.OwnerPermissions(userID))
	if err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}
	return fromDocument(doc), nil
}

func (r *Repo) Get(ctx context.Context, id string) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.entries.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	doc, err := r.store.Get(ctx, Collection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return fromDocument(doc), nil
}

func (r *Repo) Update(ctx context.Context, id string, patch Patch) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.entries.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := patch.validate(); err != nil {
		return nil, err
	}

	doc, err := r.store.Update(ctx, Collection, id, patch.toFields())
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("update entry: %w", err)
	}
	return fromDocument(doc), nil
}

func (r *Repo) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.entries.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := r.store.Delete(ctx, Collection, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrEntryNotFound
		}
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// ListByDate returns the day's entries, newest first.
func (r *Repo) ListByDate(ctx context.Context, userID, date string) (_ []*Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.entries.list_by_date")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	docs, err := r.store.Query(ctx, Collection, docstore.Query{
		Filters: []docstore.Filter{
			docstore.Equal("userId", userID),
			docstore.Equal("date", date),
		},
		OrderBy: docstore.OrderDesc(docstore.CreatedAtField),
		Limit:   docstore.MaxLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}

	entries := make([]*Entry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, fromDocument(doc))
	}
	return entries, nil
}

// EntryDates lists the dates of the user's latest entries by date.
func (r *Repo) EntryDates(ctx context.Context, userID string, limit int) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.entries.dates")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	docs, err := r.store.Query(ctx, Collection, docstore.Query{
		Filters: []docstore.Filter{docstore.Equal("userId", userID)},
		OrderBy: docstore.OrderDesc("date"),
		Limit:   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("query entry dates: %w", err)
	}

	dates := make([]string, 0, len(docs))
	for _, doc := range docs {
		dates = append(dates, doc.Fields.String("date"))
	}
	return dates, nil
}

func (r *Repo) DayCalories(ctx context.Context, userID, date string) (float64, error) {
	entries, err := r.ListByDate(ctx, userID, date)
	if err != nil {
		return 0, err
	}
	return SumTotals(date, entries).Calories, nil
}
