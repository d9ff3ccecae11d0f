package recipes

import (
	"context"
	"fmt"
	"math"

	"github.com/2beens/fitxp/internal/calendar"
	"github.com/2beens/fitxp/internal/entries"
	"github.com/2beens/fitxp/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=recipes_test

type entryLogger interface {
	Add(ctx context.Context, userID string, params entries.AddParams) (*entries.Entry, error)
}

type LogParams struct {
	Date     string  `json:"date"`
	Servings float64 `json:"servings"`
}

type Service struct {
	repo    *Repo
	entries entryLogger
}

func NewService(repo *Repo, entries entryLogger) *Service {
	return &Service{
		repo:    repo,
		entries: entries,
	}
}

func (s *Service) Create(ctx context.Context, userID string, params CreateParams) (*Recipe, error) {
	return s.repo.Create(ctx, userID, params)
}

func (s *Service) List(ctx context.Context, userID string, limit int) ([]*Recipe, error) {
	return s.repo.List(ctx, userID, limit)
}

func (s *Service) Get(ctx context.Context, userID, id string) (*Recipe, error) {
	recipe, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe.UserID != userID {
		log.Warnf("recipes: user [%s] tried to read recipe [%s] of another user", userID, id)
		return nil, ErrRecipeNotFound
	}
	return recipe, nil
}

// LogServing logs servings of a recipe as a single food entry. It goes
// through the entries service, so xp, goal bonus and streak follow.
func (s *Service) LogServing(ctx context.Context, userID, id string, params LogParams) (_ *entries.Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.recipes.log_serving")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("recipe_id", id))

	if params.Servings == 0 {
		params.Servings = 1
	}
	if math.IsNaN(params.Servings) || math.IsInf(params.Servings, 0) || params.Servings < 0 {
		return nil, fmt.Errorf("%w: servings must be a positive number", ErrInvalidRecipe)
	}
	if !calendar.IsValid(params.Date) {
		return nil, fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidRecipe, params.Date)
	}

	recipe, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	scale := func(v *float64) *float64 {
		if v == nil {
			return nil
		}
		out := math.Round(*v*params.Servings*10) / 10
		return &out
	}
	quantity := params.Servings

	return s.entries.Add(ctx, userID, entries.AddParams{
		Date:     params.Date,
		FoodName: recipe.Name,
		Calories: math.Round(float64(recipe.Calories) * params.Servings),
		Protein:  scale(recipe.Protein),
		Carbs:    scale(recipe.Carbs),
		Fat:      scale(recipe.Fat),
		Quantity: &quantity,
		Unit:     "serving",
	})
}
