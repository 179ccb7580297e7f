package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/phylotext"
)

// Ensure LoggingEmbedder implements phylotext.Embedder.
var _ phylotext.Embedder = (*LoggingEmbedder)(nil)

// LoggingEmbedder wraps an Embedder with logging.
type LoggingEmbedder struct {
	next   phylotext.Embedder
	logger *slog.Logger
}

// NewLoggingEmbedder creates a new LoggingEmbedder.
func NewLoggingEmbedder(next phylotext.Embedder, logger *slog.Logger) *LoggingEmbedder {
	return &LoggingEmbedder{next: next, logger: logger}
}

// Embed delegates to the wrapped embedder and logs the operation.
func (e *LoggingEmbedder) Embed(ctx context.Context, docs []phylotext.TaggedDocument, opts phylotext.EmbedOptions) (vectors map[int][]float32, err error) {
	defer func(begin time.Time) {
		e.logger.Info("embed",
			"embedder", e.next.Name(),
			"model", opts.Model,
			"docs", len(docs),
			"vectors", len(vectors),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Embed(ctx, docs, opts)
}

// Name delegates to the wrapped embedder.
func (e *LoggingEmbedder) Name() string {
	return e.next.Name()
}
