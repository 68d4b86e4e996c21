package site

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/lm-xiao-fen/my-inft-repo/internal/domain/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// Each page is its own template set sharing the layout, so pages can define
// their own "content" block without clashing.
var (
	indexTmpl      = mustParse("index.html")
	adminsTmpl     = mustParse("admins.html")
	profileTmpl    = mustParse("profile.html")
	adminPanelTmpl = mustParse("admin_panel.html")
)

func mustParse(page string) *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+page))
}

// pageData carries the fields every page needs.
type pageData struct {
	Title         string
	GitHubURL     string
	BackgroundURL string
	Year          int
	Team          []TeamMember
}

type indexData struct {
	pageData
	Profiles []model.Profile
}

type profileData struct {
	pageData
	Profile model.Profile
}

type adminPanelData struct {
	pageData
	Authed bool
}

func (s *Site) render(w http.ResponseWriter, r *http.Request, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		s.renderFailure(w, r, err)
	}
}
