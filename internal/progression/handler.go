package progression

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/fitxp/internal/auth"
	"github.com/2beens/fitxp/internal/calendar"
	"github.com/2beens/fitxp/internal/profile"
	"github.com/2beens/fitxp/internal/telemetry/tracing"
	"github.com/2beens/fitxp/internal/xp"
	"github.com/2beens/fitxp/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const defaultEventsLimit = 50

type EventLister interface {
	List(ctx context.Context, userID string, limit int) ([]*xp.Event, error)
}

type Handler struct {
	engine   *Engine
	profiles ProfileStore
	events   EventLister
	streaks  StreakCalculator
	clock    calendar.Clock
}

func NewHandler(
	engine *Engine,
	profiles ProfileStore,
	events EventLister,
	streaks StreakCalculator,
	clock calendar.Clock,
) *Handler {
	return &Handler{
		engine:   engine,
		profiles: profiles,
		events:   events,
		streaks:  streaks,
		clock:    clock,
	}
}

type ProgressResponse struct {
	Level       int              `json:"level"`
	XP          int              `json:"xp"`
	Prestige    int              `json:"prestige"`
	MaxPrestige int              `json:"maxPrestige"`
	LevelCap    int              `json:"levelCap"`
	Progress    xp.LevelProgress `json:"progress"`
	CanPrestige bool             `json:"canPrestige"`
	Streak      int              `json:"streak"`
}

func NewProgressResponse(p *profile.Profile) ProgressResponse {
	levelCap := xp.LevelCapFor(p.Prestige)
	return ProgressResponse{
		Level:       p.Level,
		XP:          p.XP,
		Prestige:    p.Prestige,
		MaxPrestige: xp.MaxPrestige,
		LevelCap:    levelCap,
		Progress:    xp.XpProgress(p.Level, p.XP),
		CanPrestige: p.Level >= levelCap && p.Prestige < xp.MaxPrestige,
		Streak:      p.Streak,
	}
}

type settingsRequest struct {
	CalorieGoal *int    `json:"calorieGoal"`
	Phase       *string `json:"phase"`
}

func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.get")
	defer span.End()

	p, ok := h.loadProfile(ctx, w)
	if !ok {
		return
	}
	pkg.WriteJSON(w, http.StatusOK, p)
}

// HandleUpdateSettings changes calorie goal and/or phase. Past goal bonuses
// are not re-evaluated against a new goal.
func (h *Handler) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.update")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)

	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("update profile settings, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}

	patch := profile.Patch{CalorieGoal: req.CalorieGoal}
	if req.Phase != nil {
		phase, err := profile.ParsePhase(*req.Phase)
		if err != nil {
			pkg.WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		patch.Phase = &phase
	}
	if patch.IsEmpty() {
		pkg.WriteJSONError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	existing, ok := h.loadProfile(ctx, w)
	if !ok {
		return
	}

	updated, err := h.profiles.Update(ctx, existing.UserID, patch)
	if err != nil {
		if errors.Is(err, profile.ErrInvalidCalorieGoal) {
			pkg.WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Errorf("update profile settings for [%s]: %s", userID, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) HandleGetProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.progress")
	defer span.End()

	p, ok := h.loadProfile(ctx, w)
	if !ok {
		return
	}
	pkg.WriteJSON(w, http.StatusOK, NewProgressResponse(p))
}

func (h *Handler) HandlePrestige(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.prestige")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)

	outcome, err := h.engine.DoPrestige(ctx, userID)
	switch {
	case errors.Is(err, ErrMaxPrestige):
		pkg.WriteJSONError(w, http.StatusConflict, "Already at max prestige.")
		return
	case errors.Is(err, ErrPrestigeNotEligible):
		pkg.WriteJSONError(w, http.StatusBadRequest, "Reach the level cap before you prestige.")
		return
	case err != nil:
		log.Errorf("prestige for user [%s]: %s", userID, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "prestige failed")
		return
	}

	if outcome.Profile == nil {
		pkg.WriteJSONError(w, http.StatusNotFound, "profile not found")
		return
	}
	pkg.WriteJSON(w, http.StatusOK, NewProgressResponse(outcome.Profile))
}

// HandleGetStreak computes the streak for {date}, or for today if the date is "today".
func (h *Handler) HandleGetStreak(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.streak.get")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)

	date := mux.Vars(r)["date"]
	if date == "today" {
		date = calendar.Today(h.clock)
	}
	if !calendar.IsValid(date) {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	streakLen, err := h.streaks.ComputeStreak(ctx, userID, date)
	if err != nil {
		log.Errorf("compute streak for user [%s] on %s: %s", userID, date, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "failed to compute streak")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, map[string]any{
		"date":   date,
		"streak": streakLen,
	})
}

func (h *Handler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.xp.events")
	defer span.End()

	userID, _ := auth.UserIDFromContext(ctx)

	limit := defaultEventsLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			pkg.WriteJSONError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	events, err := h.events.List(ctx, userID, limit)
	if err != nil {
		log.Errorf("list xp events for user [%s]: %s", userID, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "failed to list xp events")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, map[string]any{
		"events": events,
		"total":  len(events),
	})
}

func (h *Handler) loadProfile(ctx context.Context, w http.ResponseWriter) (*profile.Profile, bool) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, http.StatusUnauthorized, "no can do")
		return nil, false
	}

	p, err := h.profiles.GetByUserID(ctx, userID)
	if err != nil {
		log.Errorf("get profile for user [%s]: %s", userID, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "failed to get profile")
		return nil, false
	}
	if p == nil {
		pkg.WriteJSONError(w, http.StatusNotFound, "profile not found")
		return nil, false
	}
	return p, true
}
