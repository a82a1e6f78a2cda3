package render

import (
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/gracepan/portfolio/internal/content"
)

// inline allows the handful of inline tags authors use inside paragraphs.
var inline = newInlinePolicy()

func newInlinePolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.AllowAttrs("href").OnElements("a")
	p.AllowElements("a", "em", "strong", "b", "i", "code", "br", "span")
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// Inline sanitises author text for direct inclusion in a page.
func Inline(s string) template.HTML {
	return template.HTML(inline.Sanitize(s))
}

// Render maps one block to its fragment. ok is false for blocks that render
// nothing: unknown kinds and blocks missing their payload.
func Render(b content.Block) (f Fragment, ok bool) {
	f.Kind = b.Kind

	switch b.Kind {
	case content.KindPill:
		if b.Pill == nil {
			return f, false
		}
		pill := *b.Pill
		f.Pill = &pill
		if pill.Target != "" {
			f.ID = TargetID(pill.Target)
		}
	case content.KindHeading:
		if b.Heading == nil {
			return f, false
		}
		h := *b.Heading
		f.Heading = &h
	case content.KindText:
		if b.Text == nil {
			return f, false
		}
		f.Text = paragraphs(b.Text.Blocks)
	case content.KindImage:
		if b.Image == nil {
			return f, false
		}
		f.Image = imageGrid(*b.Image)
	case content.KindContent:
		if b.Content == nil {
			return f, false
		}
		f.TwoColumn = &TwoColumn{
			Reverse: b.Content.Reverse,
			Left:    region(b.Content.Left, false),
			Right:   region(b.Content.Right, true),
		}
	case content.KindEnding:
		if b.Ending == nil {
			return f, false
		}
		f.Ending = b.Ending.Text
	default:
		return Fragment{}, false
	}
	return f, true
}

func paragraphs(blocks []content.TextBlock) []Paragraph {
	var out []Paragraph
	for _, tb := range blocks {
		p := Paragraph{Kind: tb.Kind}
		switch tb.Kind {
		case content.TextParagraph:
			p.Body = Inline(tb.Body)
		case content.TextBoldLead:
			p.Lead = Inline(tb.Lead)
			p.Body = Inline(tb.Body)
		case content.TextBullets, content.TextNumbered:
			for _, li := range tb.Items {
				if li.Empty() {
					continue
				}
				p.Items = append(p.Items, Item{Bold: Inline(li.Bold), Text: Inline(li.Text)})
			}
		default:
			continue
		}
		out = append(out, p)
	}
	return out
}

// Columns maps a layout name ("1-col" … "4-col") to a column count.
// Anything else is a single column.
func Columns(layout string) int {
	switch strings.TrimSpace(strings.ToLower(layout)) {
	case "2-col":
		return 2
	case "3-col":
		return 3
	case "4-col":
		return 4
	}
	return 1
}

func imageGrid(img content.ImageBlock) *Grid {
	var slots []Slot
	switch {
	case img.Src != "":
		slots = []Slot{{Src: img.Src, Alt: img.Alt, Label: labelAt(img.Labels, 0)}}
	case len(img.Images) > 0:
		for _, im := range img.Images {
			if im.Src == "" {
				continue
			}
			slots = append(slots, Slot{Src: im.Src, Alt: im.Alt, Label: im.Label, Caption: im.Caption})
		}
	default:
		for i := 0; i < img.Count; i++ {
			slots = append(slots, Slot{Label: labelAt(img.Labels, i)})
		}
	}
	return layoutGrid(slots, Columns(img.Layout))
}

func labelAt(labels []string, i int) string {
	if i < 0 || i >= len(labels) {
		return ""
	}
	return labels[i]
}

func layoutGrid(slots []Slot, columns int) *Grid {
	g := &Grid{Columns: columns}
	for len(slots) > 0 {
		n := min(columns, len(slots))
		g.Rows = append(g.Rows, slots[:n:n])
		slots = slots[n:]
	}
	return g
}

func region(r content.Region, splitIterations bool) Region {
	out := Region{Text: paragraphs(r.Text)}

	if r.Image != nil && r.Image.Src != "" {
		out.Image = &Slot{Src: r.Image.Src, Alt: r.Image.Alt, Label: r.Image.Label, Caption: r.Image.Caption}
	}
	for _, im := range r.Placeholders {
		out.Placeholders = append(out.Placeholders, Slot{Src: im.Src, Alt: im.Alt, Label: im.Label, Caption: im.Caption})
	}

	groups := make([]Iteration, 0, len(r.Iterations))
	for _, it := range r.Iterations {
		groups = append(groups, iteration(it))
	}
	if !splitIterations {
		out.Plain = nonEmpty(groups)
		return out
	}
	out.Main, out.Side, out.Plain = splitGroups(groups)
	return out
}

// splitGroups puts annotated groups in the main column and the first
// unannotated group beside them. Other unannotated groups are not shown.
// Without annotated groups every group is returned as a plain list.
func splitGroups(groups []Iteration) (main []Iteration, side *Iteration, plain []Iteration) {
	for i := range groups {
		if len(groups[i].Notes) > 0 {
			main = append(main, groups[i])
		} else if side == nil {
			g := groups[i]
			side = &g
		}
	}
	if len(main) == 0 {
		return nil, nil, nonEmpty(groups)
	}
	return main, side, nil
}

func nonEmpty(groups []Iteration) []Iteration {
	if len(groups) == 0 {
		return nil
	}
	return groups
}

func iteration(it content.Iteration) Iteration {
	g := Iteration{Label: it.Label}
	for _, src := range it.Images {
		if src == "" {
			continue
		}
		g.Images = append(g.Images, Slot{Src: src, Alt: it.Label})
	}
	for _, n := range it.Notes {
		if n.Text == "" {
			continue
		}
		g.Notes = append(g.Notes, n)
	}
	return g
}
