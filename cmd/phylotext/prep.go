package main

import (
	"fmt"

	"github.com/fwojciec/phylotext"
)

// Run executes the prep command.
func (c *PrepCmd) Run(deps *Dependencies) error {
	n, err := deps.Pages().Transform(deps.Ctx, deps.ModPages(), phylotext.Preprocess)
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintln(deps.Stderr, "Hint: run 'phylotext fetch' first")
		return phylotext.Errorf(phylotext.ENOTFOUND, "no pages in %s", deps.Pages().Dir())
	}
	fmt.Fprintf(deps.Stdout, "Preprocessed %d pages\n", n)
	return nil
}
