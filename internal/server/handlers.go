package server

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gracepan/portfolio/internal/content"
	"github.com/gracepan/portfolio/internal/render"
)

// Home page: hero with the typing animation, then the project grid.
func (s *Server) home(c *gin.Context) {
	targets := render.Targets{}
	targets.Register(WorkTarget, WorkTarget)
	if s.about != nil {
		targets.Register(AboutTarget, AboutTarget)
	}

	cards := s.catalog.Cards(s.site.HomeCards)

	data := s.page("")
	data["typed"] = s.machine.Text(s.machine.At(0))
	data["targets"] = targets
	data["cards"] = cards
	data["more"] = s.site.HomeCards > 0 && s.catalog.Len() > s.site.HomeCards
	data["about"] = s.about
	c.HTML(http.StatusOK, "index.html", data)
}

func (s *Server) listProjects(c *gin.Context) {
	data := s.page("work")
	data["cards"] = s.catalog.Cards(0)
	c.HTML(http.StatusOK, "projects.html", data)
}

// projectData renders p's sections and gathers what the detail page shows.
func (s *Server) projectData(p content.Project) gin.H {
	rendered := render.Sections(p.Sections)

	var related []content.Card
	for _, r := range s.catalog.Related(p) {
		related = append(related, content.CardFor(r))
	}

	data := s.page(p.Title)
	data["project"] = p
	data["page"] = rendered
	data["jump"] = rendered.Targets.Href(ProcessTarget)
	data["related"] = related
	return data
}

// lookup resolves :id to a project with a detail page, answering 404
// itself when there is none.
func (s *Server) lookup(c *gin.Context) (content.Project, bool) {
	p, ok := s.catalog.Get(c.Param("id"))
	if !ok || !p.HasPage() {
		s.notFound(c)
		return content.Project{}, false
	}
	return p, true
}

func (s *Server) showProject(c *gin.Context) {
	p, ok := s.lookup(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "project.html", s.projectData(p))
}

// exportProject serves the project page as Markdown.
func (s *Server) exportProject(c *gin.Context) {
	p, ok := s.lookup(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "project-export", s.projectData(p)); err != nil {
		s.serverError(c, "Failed to render project", err)
		return
	}
	md, err := s.exporter.Convert(buf.String())
	if err != nil {
		s.serverError(c, "Failed to export project", err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+p.ID+`.md"`)
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
}

func (s *Server) apiProjects(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"projects": s.catalog.All()})
}

func (s *Server) apiProject(c *gin.Context) {
	p, ok := s.catalog.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}
