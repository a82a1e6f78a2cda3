// Package server wires the portfolio's pages, the typing stream, the JSON
// API and the admin area into a gin engine.
package server

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"github.com/gracepan/portfolio/internal/config"
	"github.com/gracepan/portfolio/internal/content"
	"github.com/gracepan/portfolio/internal/markdown"
	"github.com/gracepan/portfolio/internal/typing"
	"github.com/gracepan/portfolio/internal/visits"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// ProcessTarget is the section a project page's jump link scrolls to.
const ProcessTarget = "process"

// WorkTarget is the home page's project grid.
const WorkTarget = "work"

// AboutTarget is the home page's about section, present when an about page
// is configured.
const AboutTarget = "about"

// Deps are the collaborators a Server is built from. Visits may be nil, in
// which case tracking and the admin area are disabled. About may be nil.
type Deps struct {
	Site      *config.Site
	Catalog   *content.Catalog
	Visits    *visits.Store
	About     *markdown.Page
	Admin     AdminCredentials
	ImagesDir string
	BaseURL   string
	Clock     typing.Clock
	Logger    *slog.Logger
}

// AdminCredentials configure the admin login. PasswordHash is a bcrypt hash
// and takes precedence over Password.
type AdminCredentials struct {
	Username     string
	Password     string
	PasswordHash string
}

// Server serves the site.
type Server struct {
	site     *config.Site
	catalog  *content.Catalog
	visits   *visits.Store
	about    *markdown.Page
	machine  *typing.Machine
	clock    typing.Clock
	tmpl     *template.Template
	exporter *markdown.Exporter
	admin    *adminAuth
	images   string
	log      *slog.Logger
}

// New validates deps and prepares templates and the animator.
func New(d Deps) (*Server, error) {
	if d.Site == nil {
		return nil, errors.New("server: site config is required")
	}
	if d.Catalog == nil {
		return nil, errors.New("server: content catalog is required")
	}

	machine, err := typing.New(d.Site.Phrases, d.Site.Typing.Durations())
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("server: templates: %w", err)
	}

	s := &Server{
		site:     d.Site,
		catalog:  d.Catalog,
		visits:   d.Visits,
		about:    d.About,
		machine:  machine,
		clock:    d.Clock,
		tmpl:     tmpl,
		exporter: markdown.New(d.BaseURL),
		images:   d.ImagesDir,
		log:      d.Logger,
	}
	if s.clock == nil {
		s.clock = typing.RealClock
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if d.Visits != nil {
		s.admin = newAdminAuth(d.Admin, s.log)
	}
	return s, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"ago":   humanize.Time,
		"comma": humanize.Comma,
		"stamp": func(t time.Time) string { return t.UTC().Format("2006-01-02 15:04") },
	}
}

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.html")
}

// Handler builds the gin engine with every route registered.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(s.log))
	r.Use(securityHeaders(defaultHeaders()))
	if s.visits != nil {
		r.Use(visitorTracking(s.visits))
	}

	r.SetHTMLTemplate(s.tmpl)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	r.StaticFS("/static", http.FS(static))
	if s.images != "" {
		r.Static("/images", s.images)
	}

	r.GET("/", s.home)
	r.GET("/projects", s.listProjects)
	r.GET("/projects/:id", s.showProject)
	r.GET("/projects/:id/markdown", s.exportProject)
	r.GET("/typing/stream", s.typingStream)

	api := r.Group("/api")
	api.GET("/projects", s.apiProjects)
	api.GET("/projects/:id", s.apiProject)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if s.admin != nil {
		s.setupAdminRoutes(r)
	}

	r.NoRoute(func(c *gin.Context) {
		s.notFound(c)
	})

	return r
}

// page returns the template data every full page needs.
func (s *Server) page(title string) gin.H {
	if title == "" {
		title = s.site.Title
	} else {
		title = title + " · " + s.site.Title
	}
	return gin.H{
		"title": title,
		"site":  s.site,
	}
}

func (s *Server) notFound(c *gin.Context) {
	data := s.page("not found")
	c.HTML(http.StatusNotFound, "not-found.html", data)
}

func (s *Server) serverError(c *gin.Context, msg string, err error) {
	loggerFrom(c).Error(msg, "error", err)
	data := s.page("error")
	data["error"] = msg
	c.HTML(http.StatusInternalServerError, "error.html", data)
}
