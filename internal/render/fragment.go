// Package render turns content blocks into view fragments for the page
// templates. Rendering is pure: the same block always yields the same
// fragment, and a block that cannot be rendered yields nothing.
package render

import (
	"html/template"

	"github.com/gracepan/portfolio/internal/content"
)

// Fragment is the rendered form of one content block. Exactly one payload
// field matching Kind is set.
type Fragment struct {
	Kind content.Kind

	// ID is the element id of a fragment registered as a named target.
	ID string

	Pill      *content.Pill
	Heading   *content.Heading
	Text      []Paragraph
	Image     *Grid
	TwoColumn *TwoColumn
	Ending    string
}

// Paragraph is one rendered text sub-block.
type Paragraph struct {
	Kind  content.TextKind
	Lead  template.HTML
	Body  template.HTML
	Items []Item
}

// Ordered reports whether the paragraph is a numbered list.
func (p Paragraph) Ordered() bool { return p.Kind == content.TextNumbered }

// List reports whether the paragraph is a list of either kind.
func (p Paragraph) List() bool {
	return p.Kind == content.TextBullets || p.Kind == content.TextNumbered
}

// BoldLead reports whether the paragraph opens with a bold phrase.
func (p Paragraph) BoldLead() bool { return p.Kind == content.TextBoldLead }

// Item is one list entry.
type Item struct {
	Bold template.HTML
	Text template.HTML
}

// Slot is one cell of an image grid. A slot with no Src is a placeholder.
type Slot struct {
	Src     string
	Alt     string
	Label   string
	Caption string
}

// Placeholder reports whether the slot has no image.
func (s Slot) Placeholder() bool { return s.Src == "" }

// Grid is a set of slots laid out in rows of Columns.
type Grid struct {
	Columns int
	Rows    [][]Slot
}

// Slots returns every slot in row order.
func (g Grid) Slots() []Slot {
	var out []Slot
	for _, row := range g.Rows {
		out = append(out, row...)
	}
	return out
}

// TwoColumn is a rendered side-by-side block.
type TwoColumn struct {
	Reverse bool
	Left    Region
	Right   Region
}

// Region is one rendered side. Iteration groups land either in Plain or,
// when annotated groups exist, in Main plus an optional Side.
type Region struct {
	Text         []Paragraph
	Image        *Slot
	Placeholders []Slot
	Plain        []Iteration
	Main         []Iteration
	Side         *Iteration
}

// Empty reports whether the region has nothing to show.
func (r Region) Empty() bool {
	return len(r.Text) == 0 && r.Image == nil && len(r.Placeholders) == 0 &&
		len(r.Plain) == 0 && len(r.Main) == 0 && r.Side == nil
}

// Split reports whether iterations use the main/side arrangement.
func (r Region) Split() bool { return len(r.Main) > 0 }

// Iteration is a rendered iteration group.
type Iteration struct {
	Label  string
	Images []Slot
	Notes  []content.Note
}
