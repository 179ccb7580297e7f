package mock

import (
	"context"

	"github.com/fwojciec/phylotext"
)

var _ phylotext.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of phylotext.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ phylotext.ContentFetcher = (*ContentFetcher)(nil)

// ContentFetcher is a mock implementation of phylotext.ContentFetcher.
type ContentFetcher struct {
	FetchContentFn func(ctx context.Context, family string) (string, error)
}

func (f *ContentFetcher) FetchContent(ctx context.Context, family string) (string, error) {
	return f.FetchContentFn(ctx, family)
}

var _ phylotext.HostLimiter = (*HostLimiter)(nil)

// HostLimiter is a mock implementation of phylotext.HostLimiter.
type HostLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}
