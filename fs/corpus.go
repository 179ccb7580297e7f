package fs

import (
	"context"

	"github.com/fwojciec/phylotext"
)

// Ensure CorpusReader implements phylotext.CorpusReader at compile time.
var _ phylotext.CorpusReader = (*CorpusReader)(nil)

// CorpusReader builds the tagged corpus from a page directory.
type CorpusReader struct {
	Pages *PageStore
}

// NewCorpusReader creates a CorpusReader over the pages in dir.
func NewCorpusReader(dir string) *CorpusReader {
	return &CorpusReader{Pages: NewPageStore(dir)}
}

// ReadCorpus tokenizes every page in ascending file name order and tags it
// with the registry index of its family.
func (r *CorpusReader) ReadCorpus(ctx context.Context, reg *phylotext.Registry) ([]phylotext.TaggedDocument, []string, error) {
	families, err := r.Pages.Families()
	if err != nil {
		return nil, nil, err
	}

	var docs []phylotext.TaggedDocument
	var skipped []string
	for _, family := range families {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		index, ok := reg.Index(family)
		if !ok {
			skipped = append(skipped, family)
			continue
		}

		content, err := r.Pages.Load(family)
		if err != nil {
			return nil, nil, err
		}
		docs = append(docs, phylotext.TaggedDocument{
			Index:  index,
			Family: family,
			Words:  phylotext.Tokenize(content),
		})
	}
	return docs, skipped, nil
}
