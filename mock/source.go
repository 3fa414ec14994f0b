package mock

import (
	"context"

	"github.com/fwojciec/newsgrab"
)

var _ newsgrab.SourceClient = (*SourceClient)(nil)

// SourceClient is a mock implementation of newsgrab.SourceClient.
type SourceClient struct {
	SourceFn func() newsgrab.Source
	SearchFn func(ctx context.Context, query string, limit int) ([]newsgrab.ItemReference, error)
}

func (c *SourceClient) Source() newsgrab.Source {
	return c.SourceFn()
}

func (c *SourceClient) Search(ctx context.Context, query string, limit int) ([]newsgrab.ItemReference, error) {
	return c.SearchFn(ctx, query, limit)
}
