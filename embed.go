package phylotext

import "context"

// EmbedOptions configures an embedding run. Implementations ignore fields
// they do not support.
type EmbedOptions struct {
	// Model selects a hosted embedding model.
	Model string

	// Dimensions is the requested vector length. Zero uses the default.
	Dimensions int

	// Method selects an implementation-specific weighting scheme.
	Method string
}

// Embedder turns a tagged corpus into one vector per document.
type Embedder interface {
	// Embed returns vectors keyed by document index.
	Embed(ctx context.Context, docs []TaggedDocument, opts EmbedOptions) (map[int][]float32, error)

	// Name identifies the embedder in cache keys and logs.
	Name() string
}

// EmbeddingCache stores embeddings under a fingerprint of their inputs.
type EmbeddingCache interface {
	// FindEmbeddings returns ENOTFOUND if nothing is stored under key.
	FindEmbeddings(ctx context.Context, key string) (map[int][]float32, error)

	// SaveEmbeddings replaces whatever is stored under key.
	SaveEmbeddings(ctx context.Context, key string, vectors map[int][]float32) error
}
