// Package goquery implements HTML inspection on top of PuerkitoBio/goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/rpeek"
)

// Ensure LinkExtractor implements rpeek.LinkExtractor at compile time.
var _ rpeek.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor pulls anchors out of comment HTML.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks returns every http(s) link in html. Relative links resolve
// against baseURL. Fragment-only and non-HTTP links are skipped.
func (e *LinkExtractor) ExtractLinks(html, baseURL string) ([]rpeek.Link, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, rpeek.Errorf(rpeek.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, rpeek.Errorf(rpeek.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []rpeek.Link
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") || isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true

		links = append(links, rpeek.Link{
			URL:  resolved,
			Text: strings.TrimSpace(sel.Text()),
		})
	})

	return links, nil
}

// resolveURL resolves href against base. Returns empty string if href
// cannot be parsed or does not resolve to an http(s) URL.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(href)
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
