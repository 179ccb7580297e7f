package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/phylotext"
	"github.com/fwojciec/phylotext/goquery"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	f, err := os.Open(c.Source)
	if err != nil {
		return err
	}
	defer f.Close()

	tax, err := goquery.NewParser(deps.Config).Parse(f)
	if err != nil {
		return err
	}
	for _, o := range tax.Overlaps() {
		deps.Logger.Warn("family found in more than one clade", "family", o.Family, "clades", strings.Join(o.Labels, ","))
	}

	reg := phylotext.NewRegistry(tax.Families)
	existing, err := deps.Artifacts.ReadRegistry()
	switch {
	case phylotext.ErrorCode(err) == phylotext.ENOTFOUND:
	case err != nil:
		return err
	case !existing.Equal(reg) && !c.Force:
		return phylotext.Errorf(phylotext.ECONFLICT,
			"stored index table lists %d families, source lists %d; rerun with --force to replace it and invalidate caches",
			existing.Len(), reg.Len())
	}

	if err := deps.Artifacts.WriteTaxonomy(tax); err != nil {
		return err
	}
	if err := deps.Artifacts.WriteRegistry(reg); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Parsed %d families\n", reg.Len())
	for _, clade := range tax.Clades {
		fmt.Fprintf(deps.Stdout, "  %s: %d\n", clade.Label, len(clade.Members))
	}
	return nil
}
