package yaml_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/phylotext"
	"github.com/fwojciec/phylotext/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := yaml.DefaultConfig()

	assert.Equal(t, []string{"chond", "ost", "mam", "saur", "amp"}, cfg.Labels())
	assert.Equal(t, phylotext.CladeWindow{Label: "amp", Start: "Amphibia"}, cfg.Windows[4])
	assert.Len(t, cfg.Policy.Exclude, 4)
	assert.Len(t, cfg.Policy.Rename, 11)

	name, ok := cfg.Policy.Normalize("Ursidae")
	assert.True(t, ok)
	assert.Equal(t, "Bear", name)
	_, ok = cfg.Policy.Normalize("Centropidae")
	assert.False(t, ok)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("loads windows and policy", func(t *testing.T) {
		t.Parallel()

		in := `
windows:
  - label: fish
    start: Chondrichthyes
    end: Tetrapoda
  - label: tetrapods
    start: Tetrapoda
exclude: [Menidae]
rename:
  Ursidae: Bear
`
		cfg, err := yaml.LoadConfig(strings.NewReader(in))

		require.NoError(t, err)
		assert.Equal(t, []phylotext.CladeWindow{
			{Label: "fish", Start: "Chondrichthyes", End: "Tetrapoda"},
			{Label: "tetrapods", Start: "Tetrapoda"},
		}, cfg.Windows)
		assert.Contains(t, cfg.Policy.Exclude, "Menidae")
		assert.Equal(t, "Bear", cfg.Policy.Rename["Ursidae"])
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		in := "windows:\n  - label: a\n    start: A\nexcludes: [Menidae]\n"

		_, err := yaml.LoadConfig(strings.NewReader(in))

		require.Error(t, err)
		assert.Equal(t, phylotext.EINVALID, phylotext.ErrorCode(err))
	})

	t.Run("rejects configs without windows", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadConfig(strings.NewReader("exclude: [Menidae]\n"))

		assert.Equal(t, phylotext.EINVALID, phylotext.ErrorCode(err))
	})
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("empty path returns the default", func(t *testing.T) {
		t.Parallel()

		cfg, err := yaml.LoadConfigFile("")

		require.NoError(t, err)
		assert.Len(t, cfg.Windows, 5)
	})

	t.Run("reads a file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "policy.yaml")
		require.NoError(t, os.WriteFile(path, []byte("windows:\n  - label: all\n    start: Gnathostomata\n"), 0644))

		cfg, err := yaml.LoadConfigFile(path)

		require.NoError(t, err)
		assert.Equal(t, []string{"all"}, cfg.Labels())
	})

	t.Run("missing file is an error", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))

		require.Error(t, err)
	})
}

func TestEncodeConfig(t *testing.T) {
	t.Parallel()

	// Given the default config
	cfg := yaml.DefaultConfig()

	// When it is encoded and loaded back
	var buf bytes.Buffer
	require.NoError(t, yaml.EncodeConfig(&buf, cfg))
	loaded, err := yaml.LoadConfig(&buf)

	// Then nothing is lost
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
