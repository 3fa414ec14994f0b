package newsgrab

import (
	"html"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeText decodes HTML entities and normalizes whitespace. This is
// the canonical transformation applied to record titles and bodies, so
// extracting the same document twice yields byte-identical text.
func NormalizeText(s string) string {
	return CollapseWhitespace(html.UnescapeString(s))
}

// CollapseWhitespace collapses runs of spaces and tabs within lines,
// trims each line, and caps consecutive blank lines at one. Paragraph
// structure survives; incidental indentation and trailing space do not.
func CollapseWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			blank++
			if blank > 1 {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// StripDiacritics removes combining marks after NFD decomposition, so
// "café" becomes "cafe". Used where callers want accent-insensitive
// text, e.g. matching listing titles against document titles.
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
