// Package readability provides a fallback newsgrab.Extractor for pages
// trafilatura cannot handle.
package readability

import (
	"strings"

	"github.com/fwojciec/newsgrab"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements newsgrab.Extractor at compile time.
var _ newsgrab.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content as text.
func (e *Extractor) Extract(rawHTML string) (*newsgrab.ExtractResult, error) {
	if rawHTML == "" {
		return nil, newsgrab.Errorf(newsgrab.EPARSE, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, newsgrab.Errorf(newsgrab.EPARSE, "extract: %s", err)
	}

	if strings.TrimSpace(article.TextContent) == "" {
		return nil, newsgrab.Errorf(newsgrab.EPARSE, "no extractable text block")
	}

	return &newsgrab.ExtractResult{
		Title:  article.Title,
		Text:   article.TextContent,
		Author: article.Byline,
		Site:   article.SiteName,
	}, nil
}
