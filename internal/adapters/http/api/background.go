// Package api declares the JSON API contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
)

// BackgroundHandler handles the background URL routes.
type BackgroundHandler struct {
	deps Dependencies
}

// NewBackgroundHandler creates a new background handler.
func NewBackgroundHandler(deps Dependencies) *BackgroundHandler {
	return &BackgroundHandler{deps: deps}
}

type backgroundRequest struct {
	URL *string `json:"url"`
}

// HandleBackground handles GET and POST /api/background requests. Reading is
// public; setting requires a live session. An empty url clears the value.
func (h *BackgroundHandler) HandleBackground(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		url, err := h.deps.Background(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, backgroundResponse{Success: true, URL: url})
	case http.MethodPost:
		if !requireAuth(w, r, h.deps) {
			return
		}
		var req backgroundRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == nil {
			writeError(w, http.StatusBadRequest, "invalid")
			return
		}
		if err := h.deps.SetBackground(r.Context(), *req.URL); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, okResponse{Success: true})
	default:
		writeError(w, http.StatusNotFound, "unknown endpoint")
	}
}
