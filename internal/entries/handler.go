package entries

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/fitxp/internal/auth"
	"github.com/2beens/fitxp/internal/telemetry/tracing"
	"github.com/2beens/fitxp/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=entries_test

type entriesService interface {
	Add(ctx context.Context, userID string, params AddParams) (*Entry, error)
	Update(ctx context.Context, userID, id string, patch Patch) (*Entry, error)
	Delete(ctx context.Context, userID, id string) error
	ListByDate(ctx context.Context, userID, date string) ([]*Entry, error)
	DayTotals(ctx context.Context, userID, date string) (Totals, error)
}

type ListResponse struct {
	Entries []*Entry `json:"entries"`
	Total   int      `json:"total"`
}

type DeleteResponse struct {
	DeletedID string `json:"deletedId"`
}

type Handler struct {
	service entriesService
}

func NewHandler(service entriesService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.entries.add")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid content type")
		return
	}

	var params AddParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.Tracef("new entry, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, http.StatusBadRequest, "add entry failed")
		return
	}

	entry, err := h.service.Add(ctx, userID, params)
	if err != nil {
		h.writeError(w, "add entry", err)
		return
	}

	pkg.WriteJSON(w, http.StatusCreated, entry)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.entries.update")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)
	id := mux.Vars(r)["id"]
	if id == "" {
		pkg.WriteJSONError(w, http.StatusBadRequest, "error, id empty")
		return
	}

	var patch Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Tracef("update entry, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, http.StatusBadRequest, "update entry failed")
		return
	}

	entry, err := h.service.Update(ctx, userID, id, patch)
	if err != nil {
		h.writeError(w, "update entry", err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, entry)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.entries.delete")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)
	id := mux.Vars(r)["id"]
	if id == "" {
		pkg.WriteJSONError(w, http.StatusBadRequest, "error, id empty")
		return
	}

	if err := h.service.Delete(ctx, userID, id); err != nil {
		h.writeError(w, "delete entry", err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, DeleteResponse{DeletedID: id})
}

// HandleList lists the entries of ?date=YYYY-MM-DD.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.entries.list")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)

	entries, err := h.service.ListByDate(ctx, userID, r.URL.Query().Get("date"))
	if err != nil {
		h.writeError(w, "list entries", err)
		return
	}

	if entries == nil {
		entries = []*Entry{}
	}
	pkg.WriteJSON(w, http.StatusOK, ListResponse{
		Entries: entries,
		Total:   len(entries),
	})
}

func (h *Handler) HandleDayTotals(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.entries.totals")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)

	totals, err := h.service.DayTotals(ctx, userID, mux.Vars(r)["date"])
	if err != nil {
		h.writeError(w, "day totals", err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, totals)
}

func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidEntry):
		pkg.WriteJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrEntryNotFound):
		pkg.WriteJSONError(w, http.StatusNotFound, "entry not found")
	default:
		log.Errorf("%s: %s", op, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, op+" failed")
	}
}
