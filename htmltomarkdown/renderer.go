// Package htmltomarkdown renders comments as Markdown using
// JohannesKaufmann/html-to-markdown.
package htmltomarkdown

import (
	"fmt"
	"html"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/rpeek"
)

// DefaultLinkBase resolves relative links such as "/r/golang".
const DefaultLinkBase = "https://www.reddit.com"

// Ensure Renderer implements rpeek.Renderer at compile time.
var _ rpeek.Renderer = (*Renderer)(nil)

// Renderer formats a comment as a Markdown block: a header line, the body
// and the links it contains.
type Renderer struct {
	conv     *converter.Converter
	links    rpeek.LinkExtractor
	linkBase string
}

// NewRenderer creates a new Renderer. A nil links extractor omits the
// links section.
func NewRenderer(links rpeek.LinkExtractor) *Renderer {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Renderer{conv: conv, links: links, linkBase: DefaultLinkBase}
}

// Render formats c. The thread title from l heads top-level comments.
func (r *Renderer) Render(c *rpeek.Comment, l *rpeek.Listing) (string, error) {
	if c == nil {
		return "", rpeek.Errorf(rpeek.EINVALID, "nothing to render")
	}

	var b strings.Builder
	if l != nil && l.Title != "" && c.IsTopLevel() {
		fmt.Fprintf(&b, "# %s\n\n", l.Title)
	}
	fmt.Fprintf(&b, "**%s** · %s\n\n", author(c.Author), points(c.Score))

	// The API escapes body_html once more than the browser would see it.
	bodyHTML := html.UnescapeString(c.BodyHTML)

	body, err := r.body(c, bodyHTML)
	if err != nil {
		return "", err
	}
	b.WriteString(body)
	b.WriteString("\n")

	if r.links != nil && bodyHTML != "" {
		links, err := r.links.ExtractLinks(bodyHTML, r.linkBase)
		if err != nil {
			return "", err
		}
		if len(links) > 0 {
			b.WriteString("\nLinks:\n")
			for _, link := range links {
				fmt.Fprintf(&b, "- %s\n", link.URL)
			}
		}
	}

	return b.String(), nil
}

func (r *Renderer) body(c *rpeek.Comment, bodyHTML string) (string, error) {
	if strings.TrimSpace(bodyHTML) == "" {
		return strings.TrimSpace(c.Body), nil
	}
	md, err := r.conv.ConvertString(bodyHTML)
	if err != nil {
		return "", rpeek.Errorf(rpeek.EINVALID, "converting comment %s: %v", c.ID, err)
	}
	return strings.TrimSpace(md), nil
}

func author(name string) string {
	if name == "" {
		return "[deleted]"
	}
	return name
}

func points(score int) string {
	if score == 1 || score == -1 {
		return fmt.Sprintf("%d point", score)
	}
	return fmt.Sprintf("%d points", score)
}
