// Package api declares the JSON API contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lm-xiao-fen/my-inft-repo/internal/app"
	"github.com/lm-xiao-fen/my-inft-repo/internal/session"
)

// AuthHandler handles login, logout and session introspection.
type AuthHandler struct {
	deps Dependencies
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(deps Dependencies) *AuthHandler {
	return &AuthHandler{deps: deps}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin handles POST /api/login requests. On success it sets the
// session cookie alongside the success envelope.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusNotFound, "unknown endpoint")
		return
	}
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing")
		return
	}

	token, err := h.deps.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	session.SetCookie(w, token, h.deps.SessionTTL())
	writeJSON(w, http.StatusOK, okResponse{Success: true})
}

// HandleLogout handles POST /api/logout requests. The cookie is cleared even
// when no session existed.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusNotFound, "unknown endpoint")
		return
	}
	if token := session.TokenFromRequest(r); token != "" {
		if err := h.deps.Logout(r.Context(), token); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
	}
	session.ClearCookie(w)
	writeJSON(w, http.StatusOK, okResponse{Success: true})
}

// HandleSession handles GET /api/session requests. An absent or expired
// session is reported as unauthenticated, not as an error.
func (h *AuthHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusNotFound, "unknown endpoint")
		return
	}
	authed, err := h.deps.Authenticated(r.Context(), session.TokenFromRequest(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Authenticated: authed})
}
