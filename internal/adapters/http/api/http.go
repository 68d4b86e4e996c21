// Package api declares the JSON API contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/lm-xiao-fen/my-inft-repo/internal/domain/model"
)

// Dependencies required by the HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Login verifies the credential pair and returns a session token.
	Login(ctx context.Context, username, password string) (string, error)
	// Logout destroys the session for token; absent tokens are a no-op.
	Logout(ctx context.Context, token string) error
	// Authenticated reports whether token references a live session.
	Authenticated(ctx context.Context, token string) (bool, error)
	// SessionTTL returns the fixed session lifetime for cookie Max-Age.
	SessionTTL() time.Duration

	ListProfiles(ctx context.Context) ([]model.Profile, error)
	CreateProfile(ctx context.Context, draft model.Draft) (model.Profile, error)
	UpdateProfile(ctx context.Context, id string, patch model.Patch) (model.Profile, error)
	DeleteProfile(ctx context.Context, id string) error

	Background(ctx context.Context) (string, error)
	SetBackground(ctx context.Context, url string) error
}

// Server wires HTTP routes for the JSON API.
type Server struct {
	authHandler       *AuthHandler
	profilesHandler   *ProfilesHandler
	backgroundHandler *BackgroundHandler
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		authHandler:       NewAuthHandler(deps),
		profilesHandler:   NewProfilesHandler(deps),
		backgroundHandler: NewBackgroundHandler(deps),
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/login", MetricsMiddleware(s.authHandler.HandleLogin, "login"))
	mux.HandleFunc("/api/logout", MetricsMiddleware(s.authHandler.HandleLogout, "logout"))
	mux.HandleFunc("/api/session", MetricsMiddleware(s.authHandler.HandleSession, "session"))
	mux.HandleFunc("/api/profiles", MetricsMiddleware(s.profilesHandler.HandleCollection, "profiles"))
	mux.HandleFunc("/api/profiles/", MetricsMiddleware(s.profilesHandler.HandleItem, "profile"))
	mux.HandleFunc("/api/background", MetricsMiddleware(s.backgroundHandler.HandleBackground, "background"))
	mux.HandleFunc("/api/", MetricsMiddleware(handleUnknown, "unknown"))
}

// handleUnknown answers any unmatched /api/* path.
func handleUnknown(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "unknown endpoint")
}

// okResponse is the bare success envelope.
type okResponse struct {
	Success bool `json:"success"`
}

type errResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type profileResponse struct {
	Success bool          `json:"success"`
	Profile model.Profile `json:"profile"`
}

type profilesResponse struct {
	Success  bool            `json:"success"`
	Profiles []model.Profile `json:"profiles"`
}

type backgroundResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
}

type sessionResponse struct {
	Authenticated bool `json:"authenticated"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errResponse{Success: false, Error: msg})
}
