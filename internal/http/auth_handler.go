package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/mindease/internal/application"
)

type authService interface {
	Login(ctx context.Context, params application.LoginParams) (application.AuthResult, error)
	Signup(ctx context.Context, params application.SignupParams) (application.AuthResult, error)
	Refresh(ctx context.Context, identity application.Identity) (application.AuthResult, error)
}

type sessionCache interface {
	Set(ctx context.Context, identity application.Identity, token string) error
	Current() (application.Identity, bool)
	Logout(ctx context.Context) error
}

type AuthHandler struct {
	service   authService
	sessions  sessionCache
	responder responder
	logger    *slog.Logger
}

func NewAuthHandler(service authService, sessions sessionCache, logger *slog.Logger) *AuthHandler {
	base := defaultLogger(logger)
	return &AuthHandler{service: service, sessions: sessions, responder: newResponder(base), logger: base}
}

func (h *AuthHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "AuthHandler", operation, attrs...)
}

// Login validates a seeded credential pair, caches the session, and returns
// the identity with a fresh token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil || h.sessions == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Login", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode login request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	logger := h.log(r.Context(), "Login", "email", email)

	result, err := h.service.Login(r.Context(), application.LoginParams{
		Email:    email,
		Password: req.Password,
		Role:     application.Role(req.Role),
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "login rejected", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	if err := h.sessions.Set(r.Context(), result.Identity, result.Token); err != nil {
		logger.ErrorContext(r.Context(), "failed to cache session", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("user_id", result.Identity.ID).InfoContext(r.Context(), "user logged in")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, newAuthResponse(result))
}

// Signup fabricates an account, caches the session, and returns the identity
// with a fresh token.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil || h.sessions == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Signup", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode signup request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	logger := h.log(r.Context(), "Signup", "email", email)

	result, err := h.service.Signup(r.Context(), application.SignupParams{
		Email:    email,
		Password: req.Password,
		Name:     req.Name,
		Role:     application.Role(req.Role),
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "signup rejected", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	if err := h.sessions.Set(r.Context(), result.Identity, result.Token); err != nil {
		logger.ErrorContext(r.Context(), "failed to cache session", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("user_id", result.Identity.ID).InfoContext(r.Context(), "user signed up")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, newAuthResponse(result))
}

// Refresh issues a fresh token for the cached session and re-caches it.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil || h.sessions == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "Refresh")

	identity, _ := h.sessions.Current()
	result, err := h.service.Refresh(r.Context(), identity)
	if err != nil {
		logger.ErrorContext(r.Context(), "token refresh rejected", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	if err := h.sessions.Set(r.Context(), result.Identity, result.Token); err != nil {
		logger.ErrorContext(r.Context(), "failed to cache refreshed session", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("user_id", result.Identity.ID).InfoContext(r.Context(), "token refreshed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, newAuthResponse(result))
}

// Logout clears the cached session. It always succeeds for a reachable cache,
// active session or not.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.sessions == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "Logout")

	if err := h.sessions.Logout(r.Context()); err != nil {
		logger.ErrorContext(r.Context(), "failed to clear session", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "user logged out")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type userDTO struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

type authResponse struct {
	User  userDTO `json:"user"`
	Token string  `json:"token"`
}

func newAuthResponse(result application.AuthResult) authResponse {
	return authResponse{
		User: userDTO{
			ID:     result.Identity.ID,
			Email:  result.Identity.Email,
			Name:   result.Identity.Name,
			Role:   string(result.Identity.Role),
			Avatar: result.Identity.Avatar,
		},
		Token: result.Token,
	}
}
