package render

import (
	"strings"
	"unicode"

	"github.com/gracepan/portfolio/internal/content"
)

// Targets maps a target name to the element id navigation actions scroll
// to.
type Targets map[string]string

// Register records name → id. The first registration of a name wins.
func (t Targets) Register(name, id string) {
	if name == "" || id == "" {
		return
	}
	if _, exists := t[name]; exists {
		return
	}
	t[name] = id
}

// Merge copies entries from other that t does not have yet.
func (t Targets) Merge(other Targets) {
	for name, id := range other {
		t.Register(name, id)
	}
}

// Href returns the in-page link for name, or "" when nothing registered it.
func (t Targets) Href(name string) string {
	id, ok := t[name]
	if !ok {
		return ""
	}
	return "#" + id
}

// TargetID derives an element id from a target name.
func TargetID(name string) string {
	var b strings.Builder
	b.WriteString("section-")
	dash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Page is a rendered section list.
type Page struct {
	Fragments []Fragment
	Targets   Targets
}

// Sections renders blocks in document order. Blocks that render nothing are
// left out; named targets are collected into the page's registry.
func Sections(blocks []content.Block) Page {
	page := Page{Targets: Targets{}}
	for _, b := range blocks {
		f, ok := Render(b)
		if !ok {
			continue
		}
		if f.Pill != nil && f.ID != "" {
			if _, taken := page.Targets[f.Pill.Target]; taken {
				f.ID = ""
			} else {
				page.Targets.Register(f.Pill.Target, f.ID)
			}
		}
		page.Fragments = append(page.Fragments, f)
	}
	return page
}
