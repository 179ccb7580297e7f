package crawl_test

import (
	"testing"

	"github.com/fwojciec/phylotext"
	"github.com/fwojciec/phylotext/crawl"
	"github.com/stretchr/testify/assert"
)

func TestTruncateName(t *testing.T) {
	t.Parallel()

	t.Run("returns name unchanged when shorter than max", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Bear", crawl.TruncateName("Bear", 10))
	})

	t.Run("truncates with ellipsis when longer than max", func(t *testing.T) {
		t.Parallel()
		result := crawl.TruncateName("Pseudotriakidae (false catsharks)", 12)
		assert.Equal(t, "Pseudotri...", result)
		assert.Len(t, result, 12)
	})

	t.Run("counts runes rather than bytes", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Ælurida", crawl.TruncateName("Ælurida", 7))
	})

	t.Run("returns empty string when maxLen is not positive", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, crawl.TruncateName("Bear", 0))
		assert.Empty(t, crawl.TruncateName("Bear", -1))
	})

	t.Run("returns prefix when maxLen is very small", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Fel", crawl.TruncateName("Felidae", 3))
	})
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	t.Run("formats bytes as B", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "512 B", crawl.FormatBytes(512))
	})

	t.Run("formats kilobytes as KB", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "1.5 KB", crawl.FormatBytes(1536))
	})

	t.Run("formats megabytes as MB", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "2.0 MB", crawl.FormatBytes(2*1024*1024))
	})
}

func TestFormatProgress(t *testing.T) {
	t.Parallel()

	t.Run("saved page", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "[3/120] Bear", crawl.FormatProgress(phylotext.FetchProgress{Family: "Bear", Completed: 3, Total: 120}))
	})

	t.Run("cached page", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "[1/2] Bear (cached)", crawl.FormatProgress(phylotext.FetchProgress{Family: "Bear", Completed: 1, Total: 2, Skipped: true}))
	})

	t.Run("failed page shows the cause", func(t *testing.T) {
		t.Parallel()
		p := phylotext.FetchProgress{Family: "Tody", Completed: 2, Total: 2, Error: phylotext.Errorf(phylotext.EFETCH, "page does not exist")}
		assert.Equal(t, "[2/2] Tody failed: page does not exist", crawl.FormatProgress(p))
	})
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	r := &crawl.Result{Saved: 2, Skipped: 1, Bytes: 2048, Failures: []phylotext.FetchFailure{{Ordinal: 4, Family: "Tody"}}}

	assert.Equal(t, "saved 2 pages (2.0 KB), 1 cached, 1 failed", crawl.FormatSummary(r))
}
