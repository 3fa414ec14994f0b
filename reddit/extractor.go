package reddit

import (
	"encoding/json"
	"strings"

	"github.com/fwojciec/newsgrab"
)

// DefaultMaxComments caps how many comments are folded into a record
// body. Large threads run to tens of thousands.
const DefaultMaxComments = 50

// maxCommentDepth bounds reply recursion.
const maxCommentDepth = 15

// Ensure Extractor implements newsgrab.Extractor at compile time.
var _ newsgrab.Extractor = (*Extractor)(nil)

// Extractor reduces a Reddit post JSON document to text. The body is
// the post's selftext followed by comment bodies in thread order;
// deleted and removed entries are skipped.
type Extractor struct {
	maxComments int
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithMaxComments caps the number of comments included in the body.
// Zero disables comments entirely.
func WithMaxComments(n int) ExtractorOption {
	return func(e *Extractor) {
		e.maxComments = n
	}
}

// NewExtractor creates a Reddit post extractor.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{maxComments: DefaultMaxComments}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses the two-element [post, comments] array Reddit returns
// for a post .json endpoint.
func (e *Extractor) Extract(body string) (*newsgrab.ExtractResult, error) {
	var sections []listing
	if err := json.Unmarshal([]byte(body), &sections); err != nil {
		return nil, newsgrab.Errorf(newsgrab.EPARSE, "malformed Reddit post document: %s", err)
	}
	if len(sections) == 0 {
		return nil, newsgrab.Errorf(newsgrab.EPARSE, "empty Reddit post document")
	}

	post, ok := firstPost(sections[0])
	if !ok {
		return nil, newsgrab.Errorf(newsgrab.EPARSE, "no post in Reddit document")
	}

	parts := make([]string, 0, 1+e.maxComments)
	if text := strings.TrimSpace(post.SelfText); text != "" && !deleted(text) {
		parts = append(parts, text)
	}

	if len(sections) > 1 && e.maxComments > 0 {
		budget := e.maxComments
		for _, child := range sections[1].Data.Children {
			if budget == 0 {
				break
			}
			parts = e.appendComment(parts, child, 0, &budget)
		}
	}

	if len(parts) == 0 && strings.TrimSpace(post.Title) == "" {
		return nil, newsgrab.Errorf(newsgrab.EPARSE, "no extractable text in Reddit post")
	}

	return &newsgrab.ExtractResult{
		Title:       newsgrab.StripDiacritics(post.Title),
		Text:        newsgrab.StripDiacritics(strings.Join(parts, "\n\n")),
		Author:      post.Author,
		Site:        "r/" + post.Subreddit,
		PublishedAt: epochTime(post.CreatedUTC),
	}, nil
}

// appendComment collects one comment and its replies depth-first,
// decrementing budget per included comment.
func (e *Extractor) appendComment(parts []string, th thing, depth int, budget *int) []string {
	if th.Kind != "t1" || depth > maxCommentDepth || *budget == 0 {
		return parts
	}

	var comment commentData
	if err := json.Unmarshal(th.Data, &comment); err != nil {
		return parts
	}

	if text := strings.TrimSpace(comment.Body); text != "" && !deleted(text) && !deleted(comment.Author) {
		parts = append(parts, text)
		*budget--
	}

	// Replies is the empty string when a comment has none.
	var replies listing
	if len(comment.Replies) > 0 && json.Unmarshal(comment.Replies, &replies) == nil {
		for _, child := range replies.Data.Children {
			if *budget == 0 {
				break
			}
			parts = e.appendComment(parts, child, depth+1, budget)
		}
	}

	return parts
}

func firstPost(l listing) (postData, bool) {
	for _, child := range l.Data.Children {
		if child.Kind != "t3" {
			continue
		}
		var post postData
		if err := json.Unmarshal(child.Data, &post); err != nil {
			continue
		}
		return post, true
	}
	return postData{}, false
}

func deleted(s string) bool {
	return s == "[deleted]" || s == "[removed]"
}
