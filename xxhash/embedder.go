// Package xxhash embeds documents offline by hashing their words into a
// fixed number of TF-IDF weighted buckets.
package xxhash

import (
	"context"
	"maps"
	"math"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/phylotext"
)

// DefaultDimensions is the vector length used when EmbedOptions.Dimensions
// is zero.
const DefaultDimensions = 256

// Weighting methods.
const (
	MethodTFIDF = "tfidf"
	MethodTF    = "tf"
)

// Ensure Embedder implements phylotext.Embedder at compile time.
var _ phylotext.Embedder = (*Embedder)(nil)

// Embedder implements phylotext.Embedder with signed feature hashing. The
// sign bit of a word's hash decides whether it adds to or subtracts from its
// bucket, so collisions cancel out on average. Vectors are L2-normalized.
type Embedder struct{}

// NewEmbedder creates a new Embedder.
func NewEmbedder() *Embedder {
	return &Embedder{}
}

// Name identifies the embedder.
func (e *Embedder) Name() string {
	return "hashing"
}

// Embed returns one vector per document, keyed by document index. The same
// corpus and options always produce the same vectors.
func (e *Embedder) Embed(ctx context.Context, docs []phylotext.TaggedDocument, opts phylotext.EmbedOptions) (map[int][]float32, error) {
	dims := opts.Dimensions
	if dims == 0 {
		dims = DefaultDimensions
	}
	if dims < 0 {
		return nil, phylotext.Errorf(phylotext.EINVALID, "dimensions must be positive, got %d", dims)
	}

	method := opts.Method
	if method == "" {
		method = MethodTFIDF
	}
	if method != MethodTFIDF && method != MethodTF {
		return nil, phylotext.Errorf(phylotext.EINVALID, "unknown weighting method %q (want %s or %s)", method, MethodTFIDF, MethodTF)
	}

	df := documentFrequencies(docs)
	n := float64(len(docs))

	vectors := make(map[int][]float32, len(docs))
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		counts := make(map[string]int)
		for _, w := range doc.Words {
			counts[w]++
		}

		vec := make([]float64, dims)
		for _, w := range slices.Sorted(maps.Keys(counts)) {
			weight := float64(counts[w]) / float64(len(doc.Words))
			if method == MethodTFIDF {
				weight *= math.Log((1+n)/(1+float64(df[w]))) + 1
			}

			h := xxhash.Sum64String(w)
			if h>>63 == 1 {
				weight = -weight
			}
			vec[h%uint64(dims)] += weight
		}
		vectors[doc.Index] = normalize(vec)
	}
	return vectors, nil
}

// documentFrequencies counts the documents each word appears in.
func documentFrequencies(docs []phylotext.TaggedDocument) map[string]int {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool, len(doc.Words))
		for _, w := range doc.Words {
			if !seen[w] {
				seen[w] = true
				df[w]++
			}
		}
	}
	return df
}

func normalize(vec []float64) []float32 {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	norm := math.Sqrt(sum)

	out := make([]float32, len(vec))
	if norm == 0 {
		return out
	}
	for i, v := range vec {
		out[i] = float32(v / norm)
	}
	return out
}
