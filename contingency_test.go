package phylotext_test

import (
	"testing"

	"github.com/fwojciec/phylotext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fourFamilies returns two clades A and B of two families each, so that the
// registry indices 0..3 have ground truth [A, A, B, B].
func fourFamilies() (*phylotext.Registry, *phylotext.Taxonomy) {
	tax := &phylotext.Taxonomy{
		Families: []string{"a1", "a2", "b1", "b2"},
		Clades: []phylotext.CladeSet{
			{Label: "A", Members: []string{"a1", "a2"}},
			{Label: "B", Members: []string{"b1", "b2"}},
		},
	}
	return phylotext.NewRegistry(tax.Families), tax
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	t.Run("perfect separation", func(t *testing.T) {
		t.Parallel()

		// Given a 2-cluster assignment [0,0,1,1] over ground truth [A,A,B,B]
		reg, tax := fourFamilies()
		a := &phylotext.ClusterAssignment{K: 2, Clusters: map[int]int{0: 0, 1: 0, 2: 1, 3: 1}}

		// When it is evaluated
		r, err := phylotext.Evaluate("kmeans", a, reg, tax)

		// Then each cluster holds exactly one clade
		require.NoError(t, err)
		assert.Equal(t, [][]int{{2, 0}, {0, 2}}, r.Rows)
		assert.Equal(t, 2, r.Cell(0, "A"))
		assert.Equal(t, 2, r.Cell(1, "B"))
		assert.Equal(t, 4, r.Assigned)
		assert.InDelta(t, 1.0, r.Purity, 1e-9)
		assert.Equal(t, map[string]int{"A": 2, "B": 2}, r.Totals)
	})

	t.Run("cells sum to the number of assigned pairs", func(t *testing.T) {
		t.Parallel()

		reg, tax := fourFamilies()
		a := &phylotext.ClusterAssignment{K: 3, Clusters: map[int]int{0: 2, 2: 2, 3: 0}}

		r, err := phylotext.Evaluate("kmeans", a, reg, tax)

		require.NoError(t, err)
		var sum int
		for _, row := range r.Rows {
			for _, n := range row {
				sum += n
			}
		}
		assert.Equal(t, 3, sum)
		assert.Equal(t, 3, r.Assigned)
		assert.Len(t, r.Rows, 3)
		assert.Equal(t, []int{0, 0}, r.Rows[1])
	})

	t.Run("copies the silhouette score", func(t *testing.T) {
		t.Parallel()

		reg, tax := fourFamilies()
		score := 0.42
		a := &phylotext.ClusterAssignment{K: 1, Clusters: map[int]int{0: 0}, Silhouette: &score}

		r, err := phylotext.Evaluate("kmeans", a, reg, tax)

		require.NoError(t, err)
		require.NotNil(t, r.Silhouette)
		assert.InDelta(t, 0.42, *r.Silhouette, 1e-9)
	})

	t.Run("rejects a family present in two clades", func(t *testing.T) {
		t.Parallel()

		tax := &phylotext.Taxonomy{
			Families: []string{"Bear", "Felidae"},
			Clades: []phylotext.CladeSet{
				{Label: "mam", Members: []string{"Bear", "Felidae"}},
				{Label: "saur", Members: []string{"Felidae"}},
			},
		}
		reg := phylotext.NewRegistry(tax.Families)
		a := &phylotext.ClusterAssignment{K: 1, Clusters: map[int]int{0: 0, 1: 0}}

		_, err := phylotext.Evaluate("kmeans", a, reg, tax)

		require.Error(t, err)
		assert.Equal(t, phylotext.EPARTITION, phylotext.ErrorCode(err))
	})

	t.Run("rejects index out of range", func(t *testing.T) {
		t.Parallel()

		reg, tax := fourFamilies()
		a := &phylotext.ClusterAssignment{K: 2, Clusters: map[int]int{4: 0}}

		_, err := phylotext.Evaluate("kmeans", a, reg, tax)

		require.Error(t, err)
		assert.Equal(t, phylotext.ECONTRACT, phylotext.ErrorCode(err))
		assert.Contains(t, phylotext.ErrorMessage(err), "index 4")
	})

	t.Run("rejects cluster id out of range", func(t *testing.T) {
		t.Parallel()

		reg, tax := fourFamilies()
		a := &phylotext.ClusterAssignment{K: 2, Clusters: map[int]int{1: 2}}

		_, err := phylotext.Evaluate("kmeans", a, reg, tax)

		require.Error(t, err)
		assert.Equal(t, phylotext.ECONTRACT, phylotext.ErrorCode(err))
		assert.Contains(t, phylotext.ErrorMessage(err), `"a2"`)
	})

	t.Run("rejects a missing cluster count", func(t *testing.T) {
		t.Parallel()

		reg, tax := fourFamilies()

		_, err := phylotext.Evaluate("kmeans", &phylotext.ClusterAssignment{}, reg, tax)

		assert.Equal(t, phylotext.ECONTRACT, phylotext.ErrorCode(err))
	})
}
