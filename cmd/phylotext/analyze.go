package main

import (
	"fmt"

	"github.com/fwojciec/phylotext"
	"github.com/fwojciec/phylotext/analyze"
	"github.com/fwojciec/phylotext/fs"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	reg, err := deps.Artifacts.ReadRegistry()
	if err != nil {
		if phylotext.ErrorCode(err) == phylotext.ENOTFOUND {
			fmt.Fprintln(deps.Stderr, "Hint: run 'phylotext parse' first")
		}
		return err
	}
	tax, err := deps.Artifacts.ReadTaxonomy(deps.Config.Labels())
	if err != nil {
		return err
	}
	if !reg.Equal(phylotext.NewRegistry(tax.Families)) {
		return phylotext.Errorf(phylotext.ECONFLICT, "%s does not match %s; rerun 'phylotext parse'", fs.IndexFile, fs.FamiliesFile)
	}

	docs, skipped, err := fs.NewCorpusReader(deps.ModPages().Dir()).ReadCorpus(deps.Ctx, reg)
	if err != nil {
		return err
	}
	for _, family := range skipped {
		deps.Logger.Warn("page has no index entry", "family", family)
	}
	if len(docs) == 0 {
		fmt.Fprintln(deps.Stderr, "Hint: run 'phylotext fetch' and 'phylotext prep' first")
		return phylotext.Errorf(phylotext.ENOTFOUND, "no documents in %s", deps.ModPages().Dir())
	}
	if err := deps.Artifacts.WriteCorpus(docs); err != nil {
		return err
	}

	k := c.K
	if k == 0 {
		k = len(tax.Clades)
	}

	result, err := deps.Analyzer.Run(deps.Ctx, analyze.Input{
		Registry: reg,
		Taxonomy: tax,
		Corpus:   docs,
		K:        k,
		EmbedOptions: phylotext.EmbedOptions{
			Model:      c.Model,
			Dimensions: c.Dimensions,
			Method:     c.Method,
		},
		ClusterOptions: phylotext.ClusterOptions{
			Metric:  c.Metric,
			Repeats: c.Repeats,
		},
		NoCache: c.NoCache,
	})
	if err != nil {
		return err
	}

	if err := deps.Artifacts.WriteAssignments(result.Report.Method, reg, result.Assignment); err != nil {
		return err
	}
	report := phylotext.FormatReport(result.Report)
	if err := deps.Artifacts.WriteReport(result.Report.Method, report); err != nil {
		return err
	}

	if len(result.Dropped) > 0 {
		fmt.Fprintf(deps.Stdout, "Dropped %d empty documents\n", len(result.Dropped))
	}
	fmt.Fprint(deps.Stdout, report)
	return nil
}
