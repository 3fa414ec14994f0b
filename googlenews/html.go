package googlenews

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsgrab"
	"golang.org/x/net/html"
)

// parseSearchPage turns a search results page into item references.
// Each result is an <article> element; the text lines within it carry,
// in order, the publication, the headline, the relative time, and
// sometimes a byline.
func parseSearchPage(body, baseURL string) ([]newsgrab.ItemReference, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, newsgrab.Errorf(newsgrab.EPARSE, "malformed search page: %s", err)
	}

	var refs []newsgrab.ItemReference
	doc.Find("article").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Find("a[href]").First().Attr("href")
		if !ok || href == "" {
			return
		}
		link := resolveLink(href, baseURL)

		lines := textLines(s)
		ref := newsgrab.ItemReference{
			Source: newsgrab.SourceGoogleNews,
			ID:     lastPathSegment(link),
			URL:    link,
			Title:  headline(lines),
		}
		if len(lines) > 0 {
			ref.Site = lines[0]
		}
		for _, line := range lines {
			if rest, found := strings.CutPrefix(line, "By "); found {
				ref.Author = rest
				break
			}
		}
		if datetime, ok := s.Find("time").First().Attr("datetime"); ok {
			if t, err := time.Parse(time.RFC3339, datetime); err == nil {
				ref.PublishedAt = t.UTC()
			}
		}

		refs = append(refs, ref)
	})

	return refs, nil
}

// headline picks the article title from the element's text lines: the
// third line when the layout is intact, otherwise the longest line.
func headline(lines []string) string {
	if len(lines) > 2 {
		return lines[2]
	}
	longest := ""
	for _, line := range lines {
		if len(line) > len(longest) {
			longest = line
		}
	}
	return longest
}

// textLines collects the non-empty text nodes of a selection in
// document order.
func textLines(s *goquery.Selection) []string {
	var lines []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := newsgrab.NormalizeText(n.Data); text != "" {
				lines = append(lines, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, node := range s.Nodes {
		walk(node)
	}
	return lines
}

// resolveLink absolutizes the relative hrefs Google News emits
// ("./articles/…", "./read/…").
func resolveLink(link, baseURL string) string {
	switch {
	case strings.HasPrefix(link, "./"):
		return baseURL + strings.TrimPrefix(link, ".")
	case strings.HasPrefix(link, "/"):
		return baseURL + link
	}
	return link
}

func lastPathSegment(link string) string {
	link = strings.TrimSuffix(link, "/")
	if i := strings.LastIndex(link, "/"); i >= 0 {
		return link[i+1:]
	}
	return link
}
