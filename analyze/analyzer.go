// Package analyze runs the embed, cluster and evaluate stages over a tagged
// corpus, replaying cached intermediate results when their inputs match.
package analyze

import (
	"context"
	"encoding/binary"
	"log/slog"
	"maps"
	"math"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/phylotext"
)

// Analyzer evaluates how well an embedder and clusterer recover the clade
// structure of a taxonomy. The caches and logger are optional.
type Analyzer struct {
	Embedder    phylotext.Embedder
	Clusterer   phylotext.Clusterer
	Embeddings  phylotext.EmbeddingCache
	Assignments phylotext.AssignmentCache
	Logger      *slog.Logger
}

// Input is one analysis run.
type Input struct {
	Registry *phylotext.Registry
	Taxonomy *phylotext.Taxonomy
	Corpus   []phylotext.TaggedDocument

	K              int
	EmbedOptions   phylotext.EmbedOptions
	ClusterOptions phylotext.ClusterOptions

	// NoCache recomputes every stage. Fresh results are still stored.
	NoCache bool
}

// Result holds the outcome of a run.
type Result struct {
	Report     *phylotext.Report
	Assignment *phylotext.ClusterAssignment

	// Dropped lists families whose document had no words.
	Dropped []string

	EmbeddingsCached bool
	AssignmentCached bool
}

// Method names one clustering configuration: the embedder, the clusterer,
// the metric and k, e.g. "hashing-kmeans-cosine-k5". Artifacts of different
// configurations are stored side by side under their method names.
func (a *Analyzer) Method(in Input) string {
	metric := in.ClusterOptions.Metric
	if metric == "" {
		metric = phylotext.MetricCosine
	}
	return a.Embedder.Name() + "-" + a.Clusterer.Name() + "-" + metric + "-k" + strconv.Itoa(in.K)
}

// Run embeds the corpus, clusters the vectors and evaluates the assignment
// against the taxonomy. A partition violation is reported before any
// embedding work starts.
func (a *Analyzer) Run(ctx context.Context, in Input) (*Result, error) {
	if in.K < 1 {
		return nil, phylotext.Errorf(phylotext.EINVALID, "k must be positive, got %d", in.K)
	}
	if _, err := in.Taxonomy.GroundTruth(in.Registry); err != nil {
		return nil, err
	}

	result := &Result{}
	docs := make([]phylotext.TaggedDocument, 0, len(in.Corpus))
	for _, d := range in.Corpus {
		if len(d.Words) == 0 {
			result.Dropped = append(result.Dropped, d.Family)
			a.logger().Warn("dropping empty document", "family", d.Family, "index", d.Index)
			continue
		}
		docs = append(docs, d)
	}
	if len(docs) < in.K {
		return nil, phylotext.Errorf(phylotext.EINVALID, "cannot form %d clusters from %d documents", in.K, len(docs))
	}

	vectors, cached, err := a.embed(ctx, docs, in)
	if err != nil {
		return nil, err
	}
	result.EmbeddingsCached = cached

	assignment, cached, err := a.cluster(ctx, vectors, in)
	if err != nil {
		return nil, err
	}
	result.Assignment = assignment
	result.AssignmentCached = cached

	report, err := phylotext.Evaluate(a.Method(in), assignment, in.Registry, in.Taxonomy)
	if err != nil {
		return nil, err
	}
	result.Report = report
	return result, nil
}

func (a *Analyzer) embed(ctx context.Context, docs []phylotext.TaggedDocument, in Input) (map[int][]float32, bool, error) {
	key := EmbeddingKey(a.Embedder.Name(), in.EmbedOptions, docs)

	if a.Embeddings != nil && !in.NoCache {
		vectors, err := a.Embeddings.FindEmbeddings(ctx, key)
		if err == nil {
			a.logger().Info("embeddings replayed from cache", "key", key, "vectors", len(vectors))
			return vectors, true, nil
		} else if phylotext.ErrorCode(err) != phylotext.ENOTFOUND {
			return nil, false, err
		}
	}

	vectors, err := a.Embedder.Embed(ctx, docs, in.EmbedOptions)
	if err != nil {
		return nil, false, err
	}
	if a.Embeddings != nil {
		if err := a.Embeddings.SaveEmbeddings(ctx, key, vectors); err != nil {
			return nil, false, err
		}
	}
	return vectors, false, nil
}

func (a *Analyzer) cluster(ctx context.Context, vectors map[int][]float32, in Input) (*phylotext.ClusterAssignment, bool, error) {
	key := AssignmentKey(a.Clusterer.Name(), in.K, in.ClusterOptions, vectors)

	if a.Assignments != nil && !in.NoCache {
		assignment, err := a.Assignments.FindAssignment(ctx, key)
		if err == nil {
			a.logger().Info("assignment replayed from cache", "key", key, "k", assignment.K)
			return assignment, true, nil
		} else if phylotext.ErrorCode(err) != phylotext.ENOTFOUND {
			return nil, false, err
		}
	}

	assignment, err := a.Clusterer.Cluster(ctx, vectors, in.K, in.ClusterOptions)
	if err != nil {
		return nil, false, err
	}
	if a.Assignments != nil {
		if err := a.Assignments.SaveAssignment(ctx, key, assignment); err != nil {
			return nil, false, err
		}
	}
	return assignment, false, nil
}

func (a *Analyzer) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

// EmbeddingKey fingerprints an embedding run: the embedder, its options and
// every document's index and words.
func EmbeddingKey(embedder string, opts phylotext.EmbedOptions, docs []phylotext.TaggedDocument) string {
	d := xxhash.New()
	writeField(d, "embed")
	writeField(d, embedder)
	writeField(d, opts.Model)
	writeField(d, strconv.Itoa(opts.Dimensions))
	writeField(d, opts.Method)
	for _, doc := range docs {
		writeField(d, strconv.Itoa(doc.Index))
		for _, w := range doc.Words {
			writeField(d, w)
		}
	}
	return strconv.FormatUint(d.Sum64(), 16)
}

// AssignmentKey fingerprints a clustering run: the clusterer, k, its options
// and the exact bits of every vector.
func AssignmentKey(clusterer string, k int, opts phylotext.ClusterOptions, vectors map[int][]float32) string {
	d := xxhash.New()
	writeField(d, "cluster")
	writeField(d, clusterer)
	writeField(d, strconv.Itoa(k))
	writeField(d, opts.Metric)
	writeField(d, strconv.Itoa(opts.Repeats))

	buf := make([]byte, 4)
	for _, idx := range slices.Sorted(maps.Keys(vectors)) {
		writeField(d, strconv.Itoa(idx))
		for _, x := range vectors[idx] {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(x))
			_, _ = d.Write(buf)
		}
	}
	return strconv.FormatUint(d.Sum64(), 16)
}

// writeField writes s followed by a NUL separator.
func writeField(d *xxhash.Digest, s string) {
	_, _ = d.WriteString(s)
	_, _ = d.Write([]byte{0})
}
