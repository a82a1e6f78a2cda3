// Package content holds the portfolio's static project records and the
// tagged content blocks their detail pages are built from.
package content

// Image is a single picture reference. An empty Src means "nothing to show".
type Image struct {
	Src     string `json:"src,omitempty"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`
	Label   string `json:"label,omitempty"`
}

// Spec is one label/value line of a project's metadata panel.
type Spec struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Project is one portfolio entry. Projects are loaded once and never
// mutated.
type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Color       string   `json:"color,omitempty"`
	Hero        Image    `json:"hero"`
	Skills      []string `json:"skills,omitempty"`
	Specs       []Spec   `json:"specs,omitempty"`
	Sections    []Block  `json:"sections,omitempty"`
	Related     []string `json:"related,omitempty"`
	Order       int      `json:"order,omitempty"`
	Placeholder bool     `json:"placeholder,omitempty"`
}

// HasPage reports whether the project has a detail page to link to.
func (p Project) HasPage() bool {
	return !p.Placeholder
}

// Card is the grid tile shown for a project.
type Card struct {
	ID    string
	Name  string
	Color string
	Image string
	Href  string
}
