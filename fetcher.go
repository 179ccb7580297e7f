package phylotext

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch returns the response body of a successful GET.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources.
	Close() error
}

// ContentFetcher retrieves the article text for a family.
type ContentFetcher interface {
	// FetchContent returns EFETCH if no usable article exists for the family.
	FetchContent(ctx context.Context, family string) (string, error)
}

// HostLimiter provides per-host rate limiting.
type HostLimiter interface {
	// Wait blocks until the rate limit allows a request to the host.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}
