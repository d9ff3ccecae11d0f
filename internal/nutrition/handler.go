package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/fitxp/internal/telemetry/tracing"
	"github.com/2beens/fitxp/pkg"

	log "github.com/sirupsen/logrus"
)

type foodSearcher interface {
	Search(ctx context.Context, query string) ([]FoodHit, error)
	Nutrients(ctx context.Context, name string) (*FoodHit, error)
}

type Handler struct {
	client foodSearcher
}

func NewHandler(client foodSearcher) *Handler {
	return &Handler{
		client: client,
	}
}

type SearchResponse struct {
	Hits  []FoodHit `json:"hits"`
	Total int       `json:"total"`
}

func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.search")
	defer span.End()

	hits, err := h.client.Search(ctx, r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, "nutrition search", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, SearchResponse{
		Hits:  hits,
		Total: len(hits),
	})
}

func (h *Handler) HandleNutrients(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.nutrients")
	defer span.End()

	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}

	hit, err := h.client.Nutrients(ctx, req.Query)
	if err != nil {
		writeError(w, "nutrition nutrients", err)
		return
	}
	if hit == nil {
		pkg.WriteJSONError(w, http.StatusNotFound, "no nutrition data found")
		return
	}
	pkg.WriteJSON(w, http.StatusOK, hit)
}

func writeError(w http.ResponseWriter, op string, err error) {
	log.Errorf("%s: %s", op, err)
	switch {
	case errors.Is(err, ErrMissingCredentials):
		pkg.WriteJSONError(w, http.StatusServiceUnavailable, "nutrition search not configured")
	default:
		pkg.WriteJSONError(w, http.StatusBadGateway, op+" failed")
	}
}
