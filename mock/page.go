package mock

import (
	"context"
	"io"

	"github.com/fwojciec/phylotext"
)

var _ phylotext.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of phylotext.PageStore.
type PageStore struct {
	SaveFn func(ctx context.Context, page *phylotext.Page) error
	HasFn  func(family string) bool
}

func (s *PageStore) Save(ctx context.Context, page *phylotext.Page) error {
	return s.SaveFn(ctx, page)
}

func (s *PageStore) Has(family string) bool {
	return s.HasFn(family)
}

var _ phylotext.CorpusReader = (*CorpusReader)(nil)

// CorpusReader is a mock implementation of phylotext.CorpusReader.
type CorpusReader struct {
	ReadCorpusFn func(ctx context.Context, reg *phylotext.Registry) ([]phylotext.TaggedDocument, []string, error)
}

func (r *CorpusReader) ReadCorpus(ctx context.Context, reg *phylotext.Registry) ([]phylotext.TaggedDocument, []string, error) {
	return r.ReadCorpusFn(ctx, reg)
}

var _ phylotext.TaxonomyParser = (*TaxonomyParser)(nil)

// TaxonomyParser is a mock implementation of phylotext.TaxonomyParser.
type TaxonomyParser struct {
	ParseFn func(r io.Reader) (*phylotext.Taxonomy, error)
}

func (p *TaxonomyParser) Parse(r io.Reader) (*phylotext.Taxonomy, error) {
	return p.ParseFn(r)
}
