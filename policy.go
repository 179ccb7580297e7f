package phylotext

import (
	"io"
	"slices"
	"strings"
)

// Policy holds the name normalization tables applied to every extracted
// family name.
type Policy struct {
	// Exclude lists names dropped entirely.
	Exclude map[string]struct{}

	// Rename maps a taxonomy browser name to the name the article source uses.
	Rename map[string]string
}

// Normalize applies the policy to a raw name. A renamed name is kept even if
// the raw form is also excluded. Returns false if the name is dropped.
func (p Policy) Normalize(raw string) (string, bool) {
	if name, ok := p.Rename[raw]; ok {
		return name, true
	}
	if _, ok := p.Exclude[raw]; ok {
		return "", false
	}
	return raw, true
}

// Apply normalizes every raw name and returns the survivors sorted and
// deduplicated.
func (p Policy) Apply(raw []string) []string {
	names := make([]string, 0, len(raw))
	for _, r := range raw {
		if name, ok := p.Normalize(r); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// CladeWindow is a labeled span of the taxonomy document between the
// emphasized occurrences of two taxon names. An empty End extends the window
// to the end of the document.
type CladeWindow struct {
	Label string
	Start string
	End   string
}

// Config is the declarative input of a parse: which windows to cut and how
// to normalize names.
type Config struct {
	Windows []CladeWindow
	Policy  Policy
}

// Validate returns an error if the config cannot drive a parse.
func (c *Config) Validate() error {
	if len(c.Windows) == 0 {
		return Errorf(EINVALID, "at least one clade window required")
	}
	seen := make(map[string]bool, len(c.Windows))
	for i, w := range c.Windows {
		if w.Label == "" {
			return Errorf(EINVALID, "clade window %d: label required", i)
		}
		if seen[w.Label] {
			return Errorf(EINVALID, "clade window %q declared twice", w.Label)
		}
		seen[w.Label] = true
		if w.Start == "" {
			return Errorf(EINVALID, "clade window %q: start marker required", w.Label)
		}
	}
	for from, to := range c.Policy.Rename {
		if to == "" {
			return Errorf(EINVALID, "rename of %q has an empty target", from)
		}
		if to == "." || to == ".." || strings.ContainsAny(to, `/\`+"\x00") {
			return Errorf(EINVALID, "rename of %q to %q: target is not a valid file name", from, to)
		}
	}
	return nil
}

// Labels returns the clade labels in window order.
func (c *Config) Labels() []string {
	labels := make([]string, len(c.Windows))
	for i, w := range c.Windows {
		labels[i] = w.Label
	}
	return labels
}

// TaxonomyParser extracts families and clade memberships from a taxonomy
// document.
type TaxonomyParser interface {
	// Parse reads the whole document. Returns ESOURCEFORMAT if a clade
	// marker is missing.
	Parse(r io.Reader) (*Taxonomy, error)
}
