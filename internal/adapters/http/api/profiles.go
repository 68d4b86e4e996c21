// Package api declares the JSON API contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/lm-xiao-fen/my-inft-repo/internal/adapters/repository"
	"github.com/lm-xiao-fen/my-inft-repo/internal/domain/model"
)

// ProfilesHandler handles the profile collection and item routes.
type ProfilesHandler struct {
	deps Dependencies
}

// NewProfilesHandler creates a new profiles handler.
func NewProfilesHandler(deps Dependencies) *ProfilesHandler {
	return &ProfilesHandler{deps: deps}
}

// HandleCollection handles GET and POST /api/profiles requests. Listing is
// public; creation requires a live session.
func (h *ProfilesHandler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		writeError(w, http.StatusNotFound, "unknown endpoint")
	}
}

func (h *ProfilesHandler) handleList(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.deps.ListProfiles(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, profilesResponse{Success: true, Profiles: profiles})
}

func (h *ProfilesHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if !requireAuth(w, r, h.deps) {
		return
	}
	var draft model.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil || draft.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid")
		return
	}
	record, err := h.deps.CreateProfile(r.Context(), draft)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{Success: true, Profile: record})
}

// HandleItem handles PUT and DELETE /api/profiles/{id} requests. Both require
// a live session.
func (h *ProfilesHandler) HandleItem(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/profiles/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "unknown endpoint")
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.handleUpdate(w, r, id)
	case http.MethodDelete:
		h.handleDelete(w, r, id)
	default:
		writeError(w, http.StatusNotFound, "unknown endpoint")
	}
}

func (h *ProfilesHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	if !requireAuth(w, r, h.deps) {
		return
	}
	var patch model.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid")
		return
	}
	record, err := h.deps.UpdateProfile(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{Success: true, Profile: record})
}

func (h *ProfilesHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if !requireAuth(w, r, h.deps) {
		return
	}
	if err := h.deps.DeleteProfile(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, okResponse{Success: true})
}
