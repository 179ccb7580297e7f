package mock

import (
	"context"

	"github.com/fwojciec/phylotext"
)

var _ phylotext.Clusterer = (*Clusterer)(nil)

// Clusterer is a mock implementation of phylotext.Clusterer.
type Clusterer struct {
	ClusterFn func(ctx context.Context, vectors map[int][]float32, k int, opts phylotext.ClusterOptions) (*phylotext.ClusterAssignment, error)
	NameFn    func() string
}

func (c *Clusterer) Cluster(ctx context.Context, vectors map[int][]float32, k int, opts phylotext.ClusterOptions) (*phylotext.ClusterAssignment, error) {
	return c.ClusterFn(ctx, vectors, k, opts)
}

func (c *Clusterer) Name() string {
	return c.NameFn()
}

var _ phylotext.AssignmentCache = (*AssignmentCache)(nil)

// AssignmentCache is a mock implementation of phylotext.AssignmentCache.
type AssignmentCache struct {
	FindAssignmentFn func(ctx context.Context, key string) (*phylotext.ClusterAssignment, error)
	SaveAssignmentFn func(ctx context.Context, key string, a *phylotext.ClusterAssignment) error
}

func (c *AssignmentCache) FindAssignment(ctx context.Context, key string) (*phylotext.ClusterAssignment, error) {
	return c.FindAssignmentFn(ctx, key)
}

func (c *AssignmentCache) SaveAssignment(ctx context.Context, key string, a *phylotext.ClusterAssignment) error {
	return c.SaveAssignmentFn(ctx, key, a)
}
