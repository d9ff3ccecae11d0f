package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/fitxp/internal/auth"
	"github.com/2beens/fitxp/internal/entries"
	"github.com/2beens/fitxp/internal/telemetry/tracing"
	"github.com/2beens/fitxp/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=recipes_test

type recipesService interface {
	Create(ctx context.Context, userID string, params CreateParams) (*Recipe, error)
	List(ctx context.Context, userID string, limit int) ([]*Recipe, error)
	Get(ctx context.Context, userID, id string) (*Recipe, error)
	LogServing(ctx context.Context, userID, id string, params LogParams) (*entries.Entry, error)
}

type ListResponse struct {
	Recipes []*Recipe `json:"recipes"`
	Total   int       `json:"total"`
}

type Handler struct {
	service recipesService
}

func NewHandler(service recipesService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.recipes.create")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)

	var params CreateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.Tracef("new recipe, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, http.StatusBadRequest, "create recipe failed")
		return
	}

	recipe, err := h.service.Create(ctx, userID, params)
	if err != nil {
		writeError(w, "create recipe", err)
		return
	}
	pkg.WriteJSON(w, http.StatusCreated, recipe)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.recipes.list")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)

	limit := DefaultListLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			pkg.WriteJSONError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	recipes, err := h.service.List(ctx, userID, limit)
	if err != nil {
		writeError(w, "list recipes", err)
		return
	}
	if recipes == nil {
		recipes = []*Recipe{}
	}
	pkg.WriteJSON(w, http.StatusOK, ListResponse{
		Recipes: recipes,
		Total:   len(recipes),
	})
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.recipes.get")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)

	recipe, err := h.service.Get(ctx, userID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "get recipe", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, recipe)
}

func (h *Handler) HandleLogServing(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.recipes.log")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)

	var params LogParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, "log recipe failed")
		return
	}

	entry, err := h.service.LogServing(ctx, userID, mux.Vars(r)["id"], params)
	if err != nil {
		writeError(w, "log recipe", err)
		return
	}
	pkg.WriteJSON(w, http.StatusCreated, entry)
}

func writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidRecipe), errors.Is(err, entries.ErrInvalidEntry):
		pkg.WriteJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrRecipeNotFound):
		pkg.WriteJSONError(w, http.StatusNotFound, "recipe not found")
	default:
		log.Errorf("%s: %s", op, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, op+" failed")
	}
}
