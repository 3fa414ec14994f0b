package newsgrab

import "time"

// ExtractResult holds the content extracted from a fetched document.
type ExtractResult struct {
	// Title from document metadata.
	Title string

	// Text is the main content with markup and boilerplate (navigation,
	// scripts, ads) removed. Whitespace is not yet normalized; the
	// pipeline does that when it builds the record.
	Text string

	// Optional metadata when the document provides it.
	Author      string
	Site        string
	PublishedAt time.Time
}

// Extractor reduces a fetched document to its main content.
// Implementations are platform- or format-specific: generic article
// extraction for news pages, JSON field extraction for Reddit posts.
type Extractor interface {
	// Extract processes a raw document body. Returns EPARSE when no
	// extractable text block is found. For an unchanged input document
	// the output is deterministic.
	Extract(body string) (*ExtractResult, error)
}
