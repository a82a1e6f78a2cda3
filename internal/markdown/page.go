package markdown

import (
	"bytes"
	"fmt"
	"html/template"
	"os"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Page is a Markdown document rendered for a template. Title comes from
// the front matter's "title" key.
type Page struct {
	Title string
	Body  template.HTML
}

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.GFM, meta.Meta),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	ugc = bluemonday.UGCPolicy()
)

// ParsePage renders src, front matter included.
func ParsePage(src []byte) (*Page, error) {
	var buf bytes.Buffer
	ctx := parser.NewContext()
	if err := md.Convert(src, &buf, parser.WithContext(ctx)); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	p := &Page{Body: template.HTML(ugc.SanitizeBytes(buf.Bytes()))}
	if title, ok := meta.Get(ctx)["title"].(string); ok {
		p.Title = title
	}
	return p, nil
}

// ReadPage loads and renders the Markdown file at path.
func ReadPage(path string) (*Page, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := ParsePage(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
