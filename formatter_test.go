package phylotext_test

import (
	"testing"

	"github.com/fwojciec/phylotext"
	"github.com/stretchr/testify/assert"
)

func TestFormatReport(t *testing.T) {
	t.Parallel()

	score := 0.1234
	r := &phylotext.Report{
		Method:     "kmeans",
		Labels:     []string{"A", "B"},
		Rows:       [][]int{{2, 0}, {0, 2}},
		Totals:     map[string]int{"A": 2, "B": 2},
		Assigned:   4,
		Purity:     1,
		Silhouette: &score,
	}

	out := phylotext.FormatReport(r)

	assert.Contains(t, out, "kmeans:")
	assert.Contains(t, out, "cluster")
	assert.Contains(t, out, "totals")
	assert.Contains(t, out, "assigned: 4")
	assert.Contains(t, out, "purity: 1.000")
	assert.Contains(t, out, "silhouette: 0.1234")
}

func TestFormatReport_OmitsMissingSilhouette(t *testing.T) {
	t.Parallel()

	r := &phylotext.Report{Method: "kmeans", Labels: []string{"A"}, Rows: [][]int{{1}}, Totals: map[string]int{"A": 1}, Assigned: 1, Purity: 1}

	assert.NotContains(t, phylotext.FormatReport(r), "silhouette")
}
