package main

import (
	"fmt"

	"github.com/fwojciec/phylotext"
	"github.com/fwojciec/phylotext/crawl"
	"github.com/fwojciec/phylotext/fs"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	reg, err := deps.Artifacts.ReadRegistry()
	if err != nil {
		if phylotext.ErrorCode(err) == phylotext.ENOTFOUND {
			fmt.Fprintln(deps.Stderr, "Hint: run 'phylotext parse' first")
		}
		return err
	}

	progress := func(p phylotext.FetchProgress) {
		if p.Error != nil {
			fmt.Fprintln(deps.Stderr, crawl.FormatProgress(p))
			return
		}
		fmt.Fprintln(deps.Stdout, crawl.FormatProgress(p))
	}

	result, err := crawl.Gather(deps.Ctx, reg.Names(), deps.ContentFetcher, deps.Pages(), crawl.GatherOptions{
		Refetch:     c.Refetch,
		Concurrency: c.Concurrency,
	}, progress)
	if result != nil {
		if werr := deps.Artifacts.WriteFailures(result.Failures); werr != nil && err == nil {
			err = werr
		}
		fmt.Fprintln(deps.Stdout, crawl.FormatSummary(result))
	}
	if err != nil {
		return err
	}

	if len(result.Failures) > 0 {
		fmt.Fprintf(deps.Stdout, "Failures logged to %s\n", deps.Artifacts.Path(fs.FailuresFile))
	}
	return nil
}
