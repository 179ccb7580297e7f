package phylotext_test

import (
	"testing"

	"github.com/fwojciec/phylotext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("assigns indices in sorted order", func(t *testing.T) {
		t.Parallel()

		reg := phylotext.NewRegistry([]string{"Felidae", "Bear", "Canidae"})

		require.Equal(t, 3, reg.Len())
		assert.Equal(t, []string{"Bear", "Canidae", "Felidae"}, reg.Names())
		i, ok := reg.Index("Canidae")
		assert.True(t, ok)
		assert.Equal(t, 1, i)
	})

	t.Run("is a bijection", func(t *testing.T) {
		t.Parallel()

		reg := phylotext.NewRegistry([]string{"Squalidae", "Bear", "Ranidae", "Mimid", "Auk"})

		for i := 0; i < reg.Len(); i++ {
			name, ok := reg.Name(i)
			require.True(t, ok)
			j, ok := reg.Index(name)
			require.True(t, ok)
			assert.Equal(t, i, j)
		}
		for _, name := range reg.Names() {
			i, _ := reg.Index(name)
			got, _ := reg.Name(i)
			assert.Equal(t, name, got)
		}
	})

	t.Run("deduplicates input", func(t *testing.T) {
		t.Parallel()

		reg := phylotext.NewRegistry([]string{"Bear", "Bear", "Auk"})

		assert.Equal(t, 2, reg.Len())
	})

	t.Run("does not modify input", func(t *testing.T) {
		t.Parallel()

		input := []string{"b", "a"}
		_ = phylotext.NewRegistry(input)

		assert.Equal(t, []string{"b", "a"}, input)
	})

	t.Run("rebuild reproduces the same mapping", func(t *testing.T) {
		t.Parallel()

		a := phylotext.NewRegistry([]string{"c", "a", "b"})
		b := phylotext.NewRegistry([]string{"b", "c", "a"})

		assert.True(t, a.Equal(b))
		assert.False(t, a.Equal(phylotext.NewRegistry([]string{"a", "b"})))
	})

	t.Run("rejects out of range lookups", func(t *testing.T) {
		t.Parallel()

		reg := phylotext.NewRegistry([]string{"a"})

		_, ok := reg.Name(-1)
		assert.False(t, ok)
		_, ok = reg.Name(1)
		assert.False(t, ok)
		_, ok = reg.Index("missing")
		assert.False(t, ok)
	})
}
