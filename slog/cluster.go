package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/phylotext"
)

// Ensure LoggingClusterer implements phylotext.Clusterer.
var _ phylotext.Clusterer = (*LoggingClusterer)(nil)

// LoggingClusterer wraps a Clusterer with logging.
type LoggingClusterer struct {
	next   phylotext.Clusterer
	logger *slog.Logger
}

// NewLoggingClusterer creates a new LoggingClusterer.
func NewLoggingClusterer(next phylotext.Clusterer, logger *slog.Logger) *LoggingClusterer {
	return &LoggingClusterer{next: next, logger: logger}
}

// Cluster delegates to the wrapped clusterer and logs the operation.
func (c *LoggingClusterer) Cluster(ctx context.Context, vectors map[int][]float32, k int, opts phylotext.ClusterOptions) (a *phylotext.ClusterAssignment, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"clusterer", c.next.Name(),
			"k", k,
			"metric", opts.Metric,
			"vectors", len(vectors),
			"duration", time.Since(begin),
		}
		if a != nil && a.Silhouette != nil {
			attrs = append(attrs, "silhouette", *a.Silhouette)
		}
		attrs = append(attrs, "err", err)
		c.logger.Info("cluster", attrs...)
	}(time.Now())
	return c.next.Cluster(ctx, vectors, k, opts)
}

// Name delegates to the wrapped clusterer.
func (c *LoggingClusterer) Name() string {
	return c.next.Name()
}
