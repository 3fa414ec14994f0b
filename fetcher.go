package newsgrab

import "context"

// Fetcher retrieves raw documents from URLs. Implementations must apply
// an explicit timeout so a single unreachable host cannot stall a run.
type Fetcher interface {
	// Fetch performs a GET of the URL and returns the response body.
	// The context controls timeout and cancellation. Returns EFETCH for
	// non-2xx responses.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases client resources.
	Close() error
}
