// Package yaml loads the parse configuration (clade windows and name
// normalization policy) from YAML.
package yaml

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/fwojciec/phylotext"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultConfig []byte

// document is the on-disk shape of a config file.
type document struct {
	Windows []window          `yaml:"windows"`
	Exclude []string          `yaml:"exclude"`
	Rename  map[string]string `yaml:"rename"`
}

type window struct {
	Label string `yaml:"label"`
	Start string `yaml:"start"`
	End   string `yaml:"end,omitempty"`
}

// DefaultConfig returns the built-in config for the Gnathostomata dump.
func DefaultConfig() *phylotext.Config {
	cfg, err := LoadConfig(bytes.NewReader(defaultConfig))
	if err != nil {
		panic(fmt.Sprintf("embedded default config: %v", err))
	}
	return cfg
}

// LoadConfig decodes and validates a config. Unknown keys are rejected so
// that typos do not silently fall back to an empty table.
func LoadConfig(r io.Reader) (*phylotext.Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, phylotext.Errorf(phylotext.EINVALID, "invalid config: %v", err)
	}

	cfg := &phylotext.Config{
		Policy: phylotext.Policy{
			Exclude: make(map[string]struct{}, len(doc.Exclude)),
			Rename:  make(map[string]string, len(doc.Rename)),
		},
	}
	for _, w := range doc.Windows {
		cfg.Windows = append(cfg.Windows, phylotext.CladeWindow{Label: w.Label, Start: w.Start, End: w.End})
	}
	for _, name := range doc.Exclude {
		cfg.Policy.Exclude[name] = struct{}{}
	}
	for from, to := range doc.Rename {
		cfg.Policy.Rename[from] = to
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigFile loads a config from path. An empty path returns the default.
func LoadConfigFile(path string) (*phylotext.Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadConfig(f)
}

// EncodeConfig writes cfg as YAML with sorted tables.
func EncodeConfig(w io.Writer, cfg *phylotext.Config) error {
	doc := document{Rename: cfg.Policy.Rename}
	for _, win := range cfg.Windows {
		doc.Windows = append(doc.Windows, window{Label: win.Label, Start: win.Start, End: win.End})
	}
	for name := range cfg.Policy.Exclude {
		doc.Exclude = append(doc.Exclude, name)
	}
	slices.Sort(doc.Exclude)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
