package recipes

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

func (r *Repo) Create(ctx context.Context, userID string, params CreateParams) (_ *Recipe, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.recipes.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := params.validate(); err != nil {
		return nil, err
	}
	fields, err := params.toFields(userID)
	if err != nil {
		return nil, err
	}

	doc, err := r.store.Create(ctx, Collection, "", fields, docstore.OwnerPermissions(userID))
	if err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	return fromDocument(doc), nil
}

func (r *Repo) Get(ctx context.Context, id string) (_ *Recipe, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.recipes.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	doc, err := r.store.Get(ctx, Collection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return fromDocument(doc), nil
}

// List returns the user's recipes ordered by name.
func (r *Repo) List(ctx context.Context, userID string, limit int) (_ []*Recipe, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.recipes.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if limit <= 0 {
		limit = DefaultListLimit
	}

	docs, err := r.store.Query(ctx, Collection, docstore.Query{
		Filters: []docstore.Filter{docstore.Equal("userId", userID)},
		OrderBy: docstore.OrderAsc("name"),
		Limit:   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}

	recipes := make([]*Recipe, 0, len(docs))
	for _, doc := range docs {
		recipes = append(recipes, fromDocument(doc))
	}
	return recipes, nil
}
