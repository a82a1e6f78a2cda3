package content

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Catalog is the immutable set of projects, in display order.
type Catalog struct {
	projects []Project
	byID     map[string]int
}

// NewCatalog indexes projects. Ids must be unique and non-empty. Projects
// are ordered by Order, then by id.
func NewCatalog(projects []Project) (*Catalog, error) {
	c := &Catalog{
		projects: append([]Project(nil), projects...),
		byID:     make(map[string]int, len(projects)),
	}
	sort.SliceStable(c.projects, func(i, j int) bool {
		if c.projects[i].Order != c.projects[j].Order {
			return c.projects[i].Order < c.projects[j].Order
		}
		return c.projects[i].ID < c.projects[j].ID
	})

	for i, p := range c.projects {
		if p.ID == "" {
			return nil, fmt.Errorf("project %q has no id", p.Title)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate project id %q", p.ID)
		}
		c.byID[p.ID] = i
	}
	return c, nil
}

// Load reads one project per *.json file at the top of fsys. A file whose
// project has no id takes the file's base name.
func Load(fsys fs.FS) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read content dir: %w", err)
	}

	var projects []Project
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".json" {
			continue
		}
		data, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}

		var p Project
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("parse %s: %w", e.Name(), err)
		}
		if p.ID == "" {
			p.ID = strings.TrimSuffix(e.Name(), ".json")
		}
		projects = append(projects, p)
	}

	return NewCatalog(projects)
}

// All returns every project in display order.
func (c *Catalog) All() []Project {
	return c.projects
}

// Len returns the number of projects.
func (c *Catalog) Len() int { return len(c.projects) }

// Get looks a project up by id.
func (c *Catalog) Get(id string) (Project, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Project{}, false
	}
	return c.projects[i], true
}

// Related resolves p's related ids. Unknown ids, placeholders and p itself
// are dropped without error.
func (c *Catalog) Related(p Project) []Project {
	var out []Project
	for _, id := range p.Related {
		r, ok := c.Get(id)
		if !ok || !r.HasPage() || r.ID == p.ID {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Cards returns grid tiles for the first limit projects (all when limit <= 0).
func (c *Catalog) Cards(limit int) []Card {
	projects := c.projects
	if limit > 0 && limit < len(projects) {
		projects = projects[:limit]
	}

	cards := make([]Card, 0, len(projects))
	for _, p := range projects {
		cards = append(cards, CardFor(p))
	}
	return cards
}

// CardFor builds the grid tile for p. Placeholders get no link.
func CardFor(p Project) Card {
	card := Card{
		ID:    p.ID,
		Name:  p.Title,
		Color: p.Color,
		Image: p.Hero.Src,
	}
	if card.Name == "" {
		card.Name = p.ID
	}
	if p.HasPage() {
		card.Href = "/projects/" + p.ID
	}
	return card
}
