// Package site serves the rendered HTML pages: the public leaderboard, the
// admin team page, profile detail pages, and the admin panel.
package site

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/lm-xiao-fen/my-inft-repo/internal/domain/model"
	"github.com/lm-xiao-fen/my-inft-repo/internal/session"
	"github.com/lm-xiao-fen/my-inft-repo/pkg/logger"
)

// Dependencies required by the page handlers.
type Dependencies interface {
	ListProfiles(ctx context.Context) ([]model.Profile, error)
	Background(ctx context.Context) (string, error)
	Authenticated(ctx context.Context, token string) (bool, error)
}

// TeamMember describes one of the fixed admin team entries shown on /admins.
type TeamMember struct {
	ID      string
	Name    string
	Avatar  string
	Contact string
	Bio     string
}

// Site renders the HTML pages.
type Site struct {
	deps      Dependencies
	title     string
	githubURL string
	team      []TeamMember
	log       logger.Logger
}

// Option applies a configuration option to the Site.
type Option func(*Site)

// WithTitle sets the page title rendered in header and footer.
func WithTitle(title string) Option {
	return func(s *Site) {
		if title != "" {
			s.title = title
		}
	}
}

// WithGitHubURL sets the repository link rendered in the footer.
func WithGitHubURL(url string) Option {
	return func(s *Site) {
		if url != "" {
			s.githubURL = url
		}
	}
}

// WithTeam replaces the fixed admin team entries.
func WithTeam(team []TeamMember) Option {
	return func(s *Site) {
		if len(team) > 0 {
			s.team = team
		}
	}
}

// WithLogger sets a logger for render failures.
func WithLogger(log logger.Logger) Option {
	return func(s *Site) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates the site renderer.
func New(deps Dependencies, opts ...Option) *Site {
	s := &Site{
		deps:      deps,
		title:     "81神人榜",
		githubURL: "https://github.com/your/repo",
		team:      defaultTeam,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches the page routes to mux. The root handler also answers
// 404 for unknown paths and 405 for non-GET methods outside /api.
func (s *Site) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/admins", getOnly(secureHeaders(s.handleAdmins)))
	mux.HandleFunc("/profile/", getOnly(secureHeaders(s.handleProfile)))
	mux.HandleFunc("/admin", getOnly(secureHeaders(s.handleAdminPanel)))
}

func (s *Site) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	secureHeaders(s.handleIndex)(w, r)
}

// handleIndex renders the leaderboard, sorted by score descending.
func (s *Site) handleIndex(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.deps.ListProfiles(r.Context())
	if err != nil {
		s.renderFailure(w, r, err)
		return
	}
	model.SortByScore(profiles)

	data := indexData{
		pageData: s.pageData(r),
		Profiles: profiles,
	}
	s.render(w, r, indexTmpl, data)
}

// handleAdmins renders the fixed admin team page.
func (s *Site) handleAdmins(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, adminsTmpl, s.pageData(r))
}

// handleProfile renders a single profile detail page.
func (s *Site) handleProfile(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/profile/")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	profiles, err := s.deps.ListProfiles(r.Context())
	if err != nil {
		s.renderFailure(w, r, err)
		return
	}
	for _, p := range profiles {
		if p.ID == id {
			data := profileData{
				pageData: s.pageData(r),
				Profile:  p,
			}
			s.render(w, r, profileTmpl, data)
			return
		}
	}
	http.NotFound(w, r)
}

// handleAdminPanel renders the admin panel shell; the table itself is filled
// by the panel's own JavaScript against the JSON API.
func (s *Site) handleAdminPanel(w http.ResponseWriter, r *http.Request) {
	authed, _ := s.deps.Authenticated(r.Context(), session.TokenFromRequest(r))
	data := adminPanelData{
		pageData: s.pageData(r),
		Authed:   authed,
	}
	s.render(w, r, adminPanelTmpl, data)
}

func (s *Site) pageData(r *http.Request) pageData {
	bg, err := s.deps.Background(r.Context())
	if err != nil {
		// A failed background lookup degrades to no background.
		bg = ""
	}
	return pageData{
		Title:         s.title,
		GitHubURL:     s.githubURL,
		BackgroundURL: bg,
		Year:          time.Now().Year(),
		Team:          s.team,
	}
}

func (s *Site) renderFailure(w http.ResponseWriter, r *http.Request, err error) {
	if s.log != nil {
		s.log.Error(r.Context(), "page render failed", logger.Error(err))
	}
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// getOnly rejects any non-GET method with 405. Pages are read-only; every
// mutation goes through the JSON API.
func getOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		next.ServeHTTP(w, r)
	}
}

// secureHeaders applies the fixed security header set to page responses.
func secureHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Content-Security-Policy", "default-src 'self'; img-src 'self' data: https:; style-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net; script-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net; connect-src 'self';")
		next.ServeHTTP(w, r)
	}
}

// defaultTeam mirrors the fixed admin team shown in the page header.
var defaultTeam = []TeamMember{
	{ID: "admin-1", Name: "周*", Avatar: "https://lm-xiao-fen.github.io/my-inft-image/image1.jpg", Contact: "G114514g@yeah.net", Bio: "初中生，up主，YouTuber"},
	{ID: "admin-2", Name: "陈*", Avatar: "https://lm-xiao-fen.github.io/my-inft-image/image3.jpg", Contact: "CY66678910@outlook.com", Bio: "初中生，一名剪辑up主"},
	{ID: "admin-3", Name: "彭*坤", Avatar: "https://lm-xiao-fen.github.io/my-inft-image/image2.jpg", Contact: "pjk666andcxk@outlook.com", Bio: "　　"},
}
