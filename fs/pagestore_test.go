package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/phylotext"
	"github.com/fwojciec/phylotext/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Per-family page storage
// Pages are stored one file per family and replaced atomically.

func TestPageStore_SaveWritesFamilyFile(t *testing.T) {
	t.Parallel()

	// Given a store
	dir := t.TempDir()
	store := fs.NewPageStore(dir)

	// When I save a page
	err := store.Save(context.Background(), &phylotext.Page{Family: "Crane (bird)", Content: "Cranes are birds."})

	// Then the file is named after the family
	require.NoError(t, err)
	content, err := os.ReadFile(filepath.Join(dir, "Crane (bird).txt"))
	require.NoError(t, err)
	assert.Equal(t, "Cranes are birds.", string(content))
	assert.True(t, store.Has("Crane (bird)"))
}

func TestPageStore_SaveReplacesExistingPage(t *testing.T) {
	t.Parallel()

	store := fs.NewPageStore(t.TempDir())
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &phylotext.Page{Family: "Bear", Content: "old"}))

	require.NoError(t, store.Save(ctx, &phylotext.Page{Family: "Bear", Content: "new"}))

	content, err := store.Load("Bear")
	require.NoError(t, err)
	assert.Equal(t, "new", content)
}

func TestPageStore_LeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := fs.NewPageStore(dir)
	require.NoError(t, store.Save(context.Background(), &phylotext.Page{Family: "Bear", Content: "x"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Bear.txt", entries[0].Name())
}

func TestPageStore_RejectsPathTraversal(t *testing.T) {
	t.Parallel()

	store := fs.NewPageStore(t.TempDir())

	for _, family := range []string{"../../etc/passwd", "a/b", "..", ""} {
		err := store.Save(context.Background(), &phylotext.Page{Family: family, Content: "bad"})

		require.Error(t, err, family)
		assert.Equal(t, phylotext.EINVALID, phylotext.ErrorCode(err))
		assert.Contains(t, phylotext.ErrorMessage(err), "path traversal")
	}
}

func TestPageStore_HasIgnoresEmptyPages(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Bear.txt"), nil, 0644))

	assert.False(t, fs.NewPageStore(dir).Has("Bear"))
	assert.False(t, fs.NewPageStore(dir).Has("Felidae"))
}

func TestPageStore_FamiliesAreSorted(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"Tody.txt", "Auk.txt", "notes.md", "Bear.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	families, err := fs.NewPageStore(dir).Families()

	require.NoError(t, err)
	assert.Equal(t, []string{"Auk", "Bear", "Tody"}, families)
}

func TestPageStore_FamiliesOfMissingDirectory(t *testing.T) {
	t.Parallel()

	families, err := fs.NewPageStore(filepath.Join(t.TempDir(), "missing")).Families()

	require.NoError(t, err)
	assert.Empty(t, families)
}

func TestPageStore_LoadMissingPage(t *testing.T) {
	t.Parallel()

	_, err := fs.NewPageStore(t.TempDir()).Load("Bear")

	assert.Equal(t, phylotext.ENOTFOUND, phylotext.ErrorCode(err))
}

func TestPageStore_Transform(t *testing.T) {
	t.Parallel()

	// Given raw pages
	ctx := context.Background()
	src := fs.NewPageStore(t.TempDir())
	require.NoError(t, src.Save(ctx, &phylotext.Page{Family: "Auk", Content: "Auks Dive"}))
	require.NoError(t, src.Save(ctx, &phylotext.Page{Family: "Bear", Content: "Bears Roar"}))
	dst := fs.NewPageStore(t.TempDir())

	// When they are transformed into another store
	n, err := src.Transform(ctx, dst, strings.ToLower)

	// Then every page is rewritten under the same family
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	content, err := dst.Load("Bear")
	require.NoError(t, err)
	assert.Equal(t, "bears roar", content)
}
