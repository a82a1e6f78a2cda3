// Package markdown converts between Markdown and HTML: project pages are
// exported as Markdown, and standalone Markdown pages are rendered for the
// site's templates.
package markdown

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
)

// Exporter converts page HTML to Markdown. It is safe for concurrent use.
type Exporter struct {
	conv   *converter.Converter
	domain string
}

// New returns an Exporter. domain, when set, turns relative links and image
// sources into absolute URLs.
func New(domain string) *Exporter {
	return &Exporter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		),
		domain: domain,
	}
}

// Convert returns the Markdown form of html.
func (e *Exporter) Convert(html string) (string, error) {
	var (
		md  string
		err error
	)
	if e.domain != "" {
		md, err = e.conv.ConvertString(html, converter.WithDomain(e.domain))
	} else {
		md, err = e.conv.ConvertString(html)
	}
	if err != nil {
		return "", fmt.Errorf("convert to markdown: %w", err)
	}
	return strings.TrimSpace(md) + "\n", nil
}
