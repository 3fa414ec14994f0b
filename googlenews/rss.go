package googlenews

import (
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/newsgrab"
)

// pubDate layouts seen in Google News feeds.
var feedTimeLayouts = []string{time.RFC1123Z, time.RFC1123}

// parseFeed turns an RSS search feed into item references.
func parseFeed(body, baseURL string) ([]newsgrab.ItemReference, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return nil, newsgrab.Errorf(newsgrab.EPARSE, "malformed feed: %s", err)
	}

	items := doc.FindElements("//channel/item")
	refs := make([]newsgrab.ItemReference, 0, len(items))
	for _, item := range items {
		link := childText(item, "link")
		if link == "" {
			continue
		}
		link = resolveLink(link, baseURL)

		site := childText(item, "source")
		title := newsgrab.NormalizeText(childText(item, "title"))
		// Feed titles carry the publication as a suffix: "Headline - Source".
		if site != "" {
			title = strings.TrimSuffix(title, " - "+site)
		}

		id := childText(item, "guid")
		if id == "" {
			id = lastPathSegment(link)
		}

		refs = append(refs, newsgrab.ItemReference{
			Source:      newsgrab.SourceGoogleNews,
			ID:          id,
			URL:         link,
			Title:       title,
			Site:        site,
			PublishedAt: parseFeedTime(childText(item, "pubDate")),
		})
	}

	return refs, nil
}

func childText(parent *etree.Element, tag string) string {
	if el := parent.SelectElement(tag); el != nil {
		return strings.TrimSpace(el.Text())
	}
	return ""
}

func parseFeedTime(s string) time.Time {
	for _, layout := range feedTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
