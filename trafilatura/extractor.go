// Package trafilatura provides the primary newsgrab.Extractor for news
// article pages.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/newsgrab"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements newsgrab.Extractor at compile time.
var _ newsgrab.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML,
// removing navigation, scripts and other boilerplate.
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, newsgrab.Errorf(newsgrab.EPARSE, "extract: %s", err)
	}

	if strings.TrimSpace(result.ContentText) == "" {
		return nil, newsgrab.Errorf(newsgrab.EPARSE, "no extractable text block")
	}

	return &newsgrab.ExtractResult{
		Title:       result.Metadata.Title,
		Text:        result.ContentText,
		Author:      result.Metadata.Author,
		Site:        result.Metadata.Sitename,
		PublishedAt: result.Metadata.Date,
	}, nil
}
