package pipeline

import (
	"github.com/fwojciec/newsgrab"
)

var _ newsgrab.Extractor = (*FallbackExtractor)(nil)

// FallbackExtractor tries each extractor in order and returns the first
// successful result. The last error is returned when all fail.
type FallbackExtractor struct {
	Extractors []newsgrab.Extractor
}

// Extract processes the document with each extractor until one succeeds.
func (e *FallbackExtractor) Extract(body string) (*newsgrab.ExtractResult, error) {
	if len(e.Extractors) == 0 {
		return nil, newsgrab.Errorf(newsgrab.EINTERNAL, "no extractors configured")
	}

	var lastErr error
	for _, extractor := range e.Extractors {
		result, err := extractor.Extract(body)
		if err == nil {
			return result, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
