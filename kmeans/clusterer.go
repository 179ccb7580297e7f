// Package kmeans partitions document vectors with muesli/kmeans.
package kmeans

import (
	"context"
	"maps"
	"math"
	"slices"

	"github.com/fwojciec/phylotext"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

const (
	// DefaultRepeats is the number of restarts when ClusterOptions.Repeats
	// is zero.
	DefaultRepeats = 25

	// DeltaThreshold stops an iteration once fewer than this fraction of
	// points change cluster.
	DeltaThreshold = 0.01
)

// Ensure Clusterer implements phylotext.Clusterer at compile time.
var _ phylotext.Clusterer = (*Clusterer)(nil)

// Clusterer implements phylotext.Clusterer with Lloyd's k-means. Each run
// starts from random centers; the run with the lowest within-cluster sum of
// squares wins.
type Clusterer struct{}

// NewClusterer creates a new Clusterer.
func NewClusterer() *Clusterer {
	return &Clusterer{}
}

// Name identifies the clusterer.
func (c *Clusterer) Name() string {
	return "kmeans"
}

// point is an observation that remembers its registry index.
type point struct {
	index  int
	coords clusters.Coordinates
}

func (p point) Coordinates() clusters.Coordinates {
	return p.coords
}

func (p point) Distance(other clusters.Coordinates) float64 {
	return p.coords.Distance(other)
}

// Cluster partitions vectors into k clusters. The cosine metric clusters
// the L2-normalized vectors. Cluster ids are numbered by their lowest member
// index.
func (c *Clusterer) Cluster(ctx context.Context, vectors map[int][]float32, k int, opts phylotext.ClusterOptions) (*phylotext.ClusterAssignment, error) {
	metric := opts.Metric
	if metric == "" {
		metric = phylotext.MetricCosine
	}
	if metric != phylotext.MetricCosine && metric != phylotext.MetricEuclidean {
		return nil, phylotext.Errorf(phylotext.EINVALID, "unknown metric %q", metric)
	}
	repeats := opts.Repeats
	if repeats <= 0 {
		repeats = DefaultRepeats
	}
	if k < 1 {
		return nil, phylotext.Errorf(phylotext.EINVALID, "k must be positive, got %d", k)
	}
	if k > len(vectors) {
		return nil, phylotext.Errorf(phylotext.EINVALID, "cannot form %d clusters from %d vectors", k, len(vectors))
	}

	dataset, err := observations(vectors, metric == phylotext.MetricCosine)
	if err != nil {
		return nil, err
	}

	km, err := kmeans.NewWithOptions(DeltaThreshold, nil)
	if err != nil {
		return nil, err
	}

	var best clusters.Clusters
	bestSSE := math.Inf(1)
	for range repeats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cc, err := km.Partition(dataset, k)
		if err != nil {
			return nil, phylotext.Errorf(phylotext.EINVALID, "kmeans: %v", err)
		}
		if sse := sumOfSquares(cc); sse < bestSSE {
			best, bestSSE = cc, sse
		}
	}

	assignment := &phylotext.ClusterAssignment{K: k, Clusters: labels(best, k)}

	points := make(map[int][]float64, len(dataset))
	for _, o := range dataset {
		p := o.(point)
		points[p.index] = p.coords
	}
	distance := Euclidean
	if metric == phylotext.MetricCosine {
		distance = Cosine
	}
	if s, ok := Silhouette(points, assignment.Clusters, distance); ok {
		assignment.Silhouette = &s
	}
	return assignment, nil
}

// observations converts vectors to k-means points in ascending index order.
func observations(vectors map[int][]float32, unit bool) (clusters.Observations, error) {
	indices := slices.Sorted(maps.Keys(vectors))
	dims := len(vectors[indices[0]])

	dataset := make(clusters.Observations, len(indices))
	for i, idx := range indices {
		v := vectors[idx]
		if len(v) != dims {
			return nil, phylotext.Errorf(phylotext.EINVALID, "vector %d has %d dimensions, want %d", idx, len(v), dims)
		}
		coords := make(clusters.Coordinates, dims)
		for j, x := range v {
			coords[j] = float64(x)
		}
		if unit {
			normalize(coords)
		}
		dataset[i] = point{index: idx, coords: coords}
	}
	return dataset, nil
}

// sumOfSquares is the within-cluster sum of squared distances.
func sumOfSquares(cc clusters.Clusters) float64 {
	var sse float64
	for _, c := range cc {
		for _, o := range c.Observations {
			sse += o.Distance(c.Center)
		}
	}
	return sse
}

// labels maps registry indices to cluster ids, renumbering clusters in order
// of their lowest member index. A point listed under several clusters is
// kept in the one with the nearest center.
func labels(cc clusters.Clusters, k int) map[int]int {
	owner := make(map[int]int)
	for ci, c := range cc {
		for _, o := range c.Observations {
			p := o.(point)
			if prev, ok := owner[p.index]; ok && p.Distance(cc[prev].Center) <= p.Distance(c.Center) {
				continue
			}
			owner[p.index] = ci
		}
	}

	renumber := make(map[int]int, k)
	for _, idx := range slices.Sorted(maps.Keys(owner)) {
		if _, ok := renumber[owner[idx]]; !ok {
			renumber[owner[idx]] = len(renumber)
		}
	}

	out := make(map[int]int, len(owner))
	for idx, ci := range owner {
		out[idx] = renumber[ci]
	}
	return out
}

func normalize(v []float64) {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] /= norm
	}
}
