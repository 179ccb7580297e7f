package mock

import (
	"context"

	"github.com/fwojciec/phylotext"
)

var _ phylotext.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of phylotext.Embedder.
type Embedder struct {
	EmbedFn func(ctx context.Context, docs []phylotext.TaggedDocument, opts phylotext.EmbedOptions) (map[int][]float32, error)
	NameFn  func() string
}

func (e *Embedder) Embed(ctx context.Context, docs []phylotext.TaggedDocument, opts phylotext.EmbedOptions) (map[int][]float32, error) {
	return e.EmbedFn(ctx, docs, opts)
}

func (e *Embedder) Name() string {
	return e.NameFn()
}

var _ phylotext.EmbeddingCache = (*EmbeddingCache)(nil)

// EmbeddingCache is a mock implementation of phylotext.EmbeddingCache.
type EmbeddingCache struct {
	FindEmbeddingsFn func(ctx context.Context, key string) (map[int][]float32, error)
	SaveEmbeddingsFn func(ctx context.Context, key string, vectors map[int][]float32) error
}

func (c *EmbeddingCache) FindEmbeddings(ctx context.Context, key string) (map[int][]float32, error) {
	return c.FindEmbeddingsFn(ctx, key)
}

func (c *EmbeddingCache) SaveEmbeddings(ctx context.Context, key string, vectors map[int][]float32) error {
	return c.SaveEmbeddingsFn(ctx, key, vectors)
}
