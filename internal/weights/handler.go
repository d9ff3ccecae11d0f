package weights

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/fitxp/internal/auth"
	"github.com/2beens/fitxp/internal/telemetry/tracing"
	"github.com/2beens/fitxp/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=weights_test

type weightsService interface {
	Add(ctx context.Context, userID string, params AddParams) (*Weight, error)
	UpdateWeight(ctx context.Context, userID, id string, value float64) (*Weight, error)
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string, limit int) ([]*Weight, error)
	GetByDate(ctx context.Context, userID, date string) (*Weight, error)
}

type ListResponse struct {
	Weights []*Weight `json:"weights"`
	Total   int       `json:"total"`
}

type Handler struct {
	service weightsService
}

func NewHandler(service weightsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weights.add")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)

	var params AddParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.Tracef("new weight, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, http.StatusBadRequest, "add weight failed")
		return
	}

	weight, err := h.service.Add(ctx, userID, params)
	if err != nil {
		writeError(w, "add weight", err)
		return
	}
	pkg.WriteJSON(w, http.StatusCreated, weight)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weights.update")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)

	var req struct {
		Weight float64 `json:"weight"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, "update weight failed")
		return
	}

	weight, err := h.service.UpdateWeight(ctx, userID, mux.Vars(r)["id"], req.Weight)
	if err != nil {
		writeError(w, "update weight", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, weight)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weights.delete")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)
	id := mux.Vars(r)["id"]

	if err := h.service.Delete(ctx, userID, id); err != nil {
		writeError(w, "delete weight", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, map[string]string{"deletedId": id})
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weights.list")
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

	weights, err := h.service.List(ctx, userID, limit)
	if err != nil {
		writeError(w, "list weights", err)
		return
	}
	if weights == nil {
		weights = []*Weight{}
	}
	pkg.WriteJSON(w, http.StatusOK, ListResponse{
		Weights: weights,
		Total:   len(weights),
	})
}

func (h *Handler) HandleGetByDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weights.by_date")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)

	weight, err := h.service.GetByDate(ctx, userID, mux.Vars(r)["date"])
	if err != nil {
		writeError(w, "get weight by date", err)
		return
	}
	if weight == nil {
		pkg.WriteJSONError(w, http.StatusNotFound, "no weight logged on that date")
		return
	}
	pkg.WriteJSON(w, http.StatusOK, weight)
}

func writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidWeight):
		pkg.WriteJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrWeightNotFound):
		pkg.WriteJSONError(w, http.StatusNotFound, "weight not found")
	default:
		log.Errorf("%s: %s", op, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, op+" failed")
	}
}
