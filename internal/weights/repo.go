package weights

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitxp/internal/docstore"
	"github.com/2beens/fitxp/internal/telemetry/tracing"
)

type Repo struct {
	store docstore.Store
}

func NewRepo(store docstore.Store) *Repo {
	return &Repo{
		store: store,
	}
}

func (r *Repo) Add(ctx context.Context, userID string, params AddParams) (_ *Weight, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weights.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := params.validate(); err != nil {
		return nil, err
	}

	doc, err := r.store.Create(ctx, Collection, "", docstore.Fields{
		"userId": userID,
		"date":   params.Date,
		"weight": params.Weight,
	}, docstore.OwnerPermissions(userID))
	if err != nil {
		return nil, fmt.Errorf("create weight: %w", err)
	}
	return fromDocument(doc), nil
}

func (r *Repo) Get(ctx context.Context, id string) (_ *Weight, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weights.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	doc, err := r.store.Get(ctx, Collection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrWeightNotFound
		}
		return nil, fmt.Errorf("get weight: %w", err)
	}
	return fromDocument(doc), nil
}

func (r *Repo) UpdateWeight(ctx context.Context, id string, weight float64) (_ *Weight, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weights.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := validateWeight(weight); err != nil {
		return nil, err
	}

	doc, err := r.store.Update(ctx, Collection, id, docstore.Fields{"weight": weight})
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrWeightNotFound
		}
		return nil, fmt.Errorf("update weight: %w", err)
	}
	return fromDocument(doc), nil
}

func (r *Repo) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weights.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := r.store.Delete(ctx, Collection, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrWeightNotFound
		}
		return fmt.Errorf("delete weight: %w", err)
	}
	return nil
}

// List returns the latest weights by date, newest first.
func (r *Repo) List(ctx context.Context, userID string, limit int) (_ []*Weight, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weights.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if limit <= 0 {
		limit = DefaultListLimit
	}

	docs, err := r.store.Query(ctx, Collection, docstore.Query{
		Filters: []docstore.Filter{docstore.Equal("userId", userID)},
		OrderBy: docstore.OrderDesc("date"),
		Limit:   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("query weights: %w", err)
	}

	weights := make([]*Weight, 0, len(docs))
	for _, doc := range docs {
		weights = append(weights, fromDocument(doc))
	}
	return weights, nil
}

// GetByDate returns nil, nil if nothing was logged that day.
func (r *Repo) GetByDate(ctx context.Context, userID, date string) (_ *Weight, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weights.get_by_date")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	docs, err := r.store.Query(ctx, Collection, docstore.Query{
		Filters: []docstore.Filter{
			docstore.Equal("userId", userID),
			docstore.Equal("date", date),
		},
		OrderBy: docstore.OrderDesc(docstore.CreatedAtField),
		Limit:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("query weight by date: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return fromDocument(docs[0]), nil
}
