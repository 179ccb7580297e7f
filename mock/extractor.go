package mock

import "github.com/fwojciec/phylotext"

var _ phylotext.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of phylotext.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*phylotext.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*phylotext.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ phylotext.Converter = (*Converter)(nil)

// Converter is a mock implementation of phylotext.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
