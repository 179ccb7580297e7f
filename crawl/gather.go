// Package crawl retrieves and stores the article text of every family.
package crawl

import (
	"context"
	"fmt"
	"sync"

	"github.com/fwojciec/phylotext"
	"golang.org/x/sync/errgroup"
)

// GatherOptions configures Gather.
type GatherOptions struct {
	// Refetch fetches families that already have a stored page.
	Refetch bool

	// Concurrency bounds the number of families in flight. Defaults to 1.
	Concurrency int
}

// Result holds the outcome of a Gather run.
type Result struct {
	Saved   int
	Skipped int
	Bytes   int

	// Failures is ordered by ordinal.
	Failures []phylotext.FetchFailure
}

type gatherOutcome struct {
	skipped bool
	bytes   int
	err     error
}

// Gather fetches and stores the page of every family. A family that cannot
// be retrieved is recorded as a failure with its 1-based position in
// families and does not stop the run, as is a family whose name the store
// rejects (EINVALID). Gather aborts on context cancellation or when the store
// fails to save a page; the partial result is returned alongside the error.
func Gather(ctx context.Context, families []string, fetcher phylotext.ContentFetcher, store phylotext.PageStore, opts GatherOptions, progress phylotext.FetchProgressFunc) (*Result, error) {
	limit := opts.Concurrency
	if limit <= 0 {
		limit = 1
	}

	outcomes := make([]gatherOutcome, len(families))
	done := make([]bool, len(families))

	var mu sync.Mutex
	completed := 0
	finish := func(i int, o gatherOutcome) {
		mu.Lock()
		defer mu.Unlock()
		outcomes[i] = o
		done[i] = true
		completed++
		if progress != nil {
			progress(phylotext.FetchProgress{
				Family:    families[i],
				Completed: completed,
				Total:     len(families),
				Skipped:   o.skipped,
				Error:     o.err,
			})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, family := range families {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if !opts.Refetch && store.Has(family) {
				finish(i, gatherOutcome{skipped: true})
				return nil
			}

			content, err := fetcher.FetchContent(gctx, family)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				finish(i, gatherOutcome{err: err})
				return nil
			}

			if err := store.Save(gctx, &phylotext.Page{Family: family, Content: content}); err != nil {
				if phylotext.ErrorCode(err) == phylotext.EINVALID {
					finish(i, gatherOutcome{err: err})
					return nil
				}
				return fmt.Errorf("save page %q: %w", family, err)
			}
			finish(i, gatherOutcome{bytes: len(content)})
			return nil
		})
	}
	err := g.Wait()

	result := &Result{}
	for i, o := range outcomes {
		switch {
		case !done[i]:
		case o.skipped:
			result.Skipped++
		case o.err != nil:
			result.Failures = append(result.Failures, phylotext.FetchFailure{
				Ordinal: i + 1,
				Family:  families[i],
				Err:     o.err,
			})
		default:
			result.Saved++
			result.Bytes += o.bytes
		}
	}
	return result, err
}
