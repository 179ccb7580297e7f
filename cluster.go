package phylotext

import "context"

// Distance metrics understood by clusterers.
const (
	MetricEuclidean = "euclidean"
	MetricCosine    = "cosine"
)

// ClusterOptions configures a clustering run. There is no seed: a run is
// not deterministic unless an AssignmentCache replays it.
type ClusterOptions struct {
	// Metric is MetricCosine or MetricEuclidean. Empty means MetricCosine.
	Metric string

	// Repeats is the number of independent restarts; the best partition wins.
	Repeats int
}

// ClusterAssignment maps registry indices to opaque cluster ids in [0, K).
type ClusterAssignment struct {
	K        int
	Clusters map[int]int

	// Silhouette is the cohesion score reported by the clusterer, if any.
	Silhouette *float64
}

// Clusterer partitions vectors into k clusters.
type Clusterer interface {
	Cluster(ctx context.Context, vectors map[int][]float32, k int, opts ClusterOptions) (*ClusterAssignment, error)

	// Name identifies the clusterer in cache keys, artifacts and reports.
	Name() string
}

// AssignmentCache stores cluster assignments under a fingerprint of their
// inputs.
type AssignmentCache interface {
	// FindAssignment returns ENOTFOUND if nothing is stored under key.
	FindAssignment(ctx context.Context, key string) (*ClusterAssignment, error)

	// SaveAssignment replaces whatever is stored under key.
	SaveAssignment(ctx context.Context, key string, a *ClusterAssignment) error
}
