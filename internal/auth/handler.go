package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/fitxp/internal/telemetry/tracing"
	"github.com/2beens/fitxp/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=auth_test

type authService interface {
	Register(ctx context.Context, reg Registration) (*User, error)
	Login(ctx context.Context, creds Credentials) (*LoginResponse, error)
	Logout(ctx context.Context, token string) (bool, error)
	Refresh(ctx context.Context, token string) (*LoginResponse, error)
}

type Handler struct {
	service authService
}

func NewHandler(service authService) *Handler {
	return &Handler{
		service: service,
	}
}

// BearerToken reads the token from the Authorization header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.register")
	defer span.End()

	var reg Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		log.Errorf("register, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}

	user, err := h.service.Register(ctx, reg)
	switch {
	case errors.Is(err, ErrInvalidRegistration):
		pkg.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, ErrUserExists):
		pkg.WriteJSONError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		log.Errorf("register user [%s]: %s", reg.Username, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "register failed")
		return
	}

	pkg.WriteJSON(w, http.StatusCreated, user)
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.login")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Errorf("login, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, http.StatusBadRequest, "login failed")
		return
	}
	if creds.Username == "" {
		pkg.WriteJSONError(w, http.StatusBadRequest, "error, username empty")
		return
	}
	if creds.Password == "" {
		pkg.WriteJSONError(w, http.StatusBadRequest, "error, password empty")
		return
	}

	resp, err := h.service.Login(ctx, creds)
	if err != nil {
		if errors.Is(err, ErrWrongCredentials) {
			pkg.WriteJSONError(w, http.StatusUnauthorized, "error, wrong credentials")
			return
		}
		log.Errorf("login failed: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "login failed")
		return
	}

	log.Trace("new login success")
	pkg.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.logout")
	defer span.End()

	token := BearerToken(r)
	if token == "" {
		pkg.WriteJSONError(w, http.StatusUnauthorized, "no can do")
		return
	}

	loggedOut, err := h.service.Logout(ctx, token)
	if err != nil && !errors.Is(err, ErrInvalidToken) {
		log.Errorf("logout: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "logout failed")
		return
	}
	if !loggedOut {
		pkg.WriteJSONError(w, http.StatusUnauthorized, "no can do")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, map[string]bool{"loggedOut": true})
}

func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.refresh")
	defer span.End()

	resp, err := h.service.Refresh(ctx, BearerToken(r))
	switch {
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrSessionExpired):
		pkg.WriteJSONError(w, http.StatusUnauthorized, "no can do")
		return
	case err != nil:
		log.Errorf("refresh token: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "refresh failed")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, resp)
}
