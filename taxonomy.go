package phylotext

import (
	"slices"
	"strings"
)

// CladeSet is the sorted set of families found inside one clade window.
type CladeSet struct {
	Label   string
	Members []string
}

// Contains reports whether the family belongs to the clade.
func (s CladeSet) Contains(family string) bool {
	_, ok := slices.BinarySearch(s.Members, family)
	return ok
}

// Taxonomy is the result of parsing one version of the taxonomy document.
type Taxonomy struct {
	// Families is the sorted, deduplicated list of all accepted families.
	Families []string

	// Clades holds one set per window, in window order.
	Clades []CladeSet
}

// Overlap names a family found in more than one clade window.
type Overlap struct {
	Family string
	Labels []string
}

// Labels returns the clade labels in window order.
func (t *Taxonomy) Labels() []string {
	labels := make([]string, len(t.Clades))
	for i, c := range t.Clades {
		labels[i] = c.Label
	}
	return labels
}

// Clade returns the clade set with the given label.
func (t *Taxonomy) Clade(label string) (CladeSet, bool) {
	for _, c := range t.Clades {
		if c.Label == label {
			return c, true
		}
	}
	return CladeSet{}, false
}

// Totals returns the size of every clade set.
func (t *Taxonomy) Totals() map[string]int {
	totals := make(map[string]int, len(t.Clades))
	for _, c := range t.Clades {
		totals[c.Label] = len(c.Members)
	}
	return totals
}

// Overlaps lists families present in more than one clade, sorted by name.
// An empty result means the clades are pairwise disjoint.
func (t *Taxonomy) Overlaps() []Overlap {
	found := make(map[string][]string)
	for _, c := range t.Clades {
		for _, m := range c.Members {
			found[m] = append(found[m], c.Label)
		}
	}

	var overlaps []Overlap
	for family, labels := range found {
		if len(labels) > 1 {
			overlaps = append(overlaps, Overlap{Family: family, Labels: labels})
		}
	}
	slices.SortFunc(overlaps, func(a, b Overlap) int {
		return strings.Compare(a.Family, b.Family)
	})
	return overlaps
}

// GroundTruth labels every registry index with its clade. Returns EPARTITION
// if a family belongs to no clade or to more than one.
func (t *Taxonomy) GroundTruth(reg *Registry) ([]string, error) {
	labels := make([]string, reg.Len())
	for i, family := range reg.names {
		var matched []string
		for _, c := range t.Clades {
			if c.Contains(family) {
				matched = append(matched, c.Label)
			}
		}
		switch len(matched) {
		case 0:
			return nil, Errorf(EPARTITION, "family %q (index %d) belongs to no clade", family, i)
		case 1:
			labels[i] = matched[0]
		default:
			return nil, Errorf(EPARTITION, "family %q (index %d) found in clades %s",
				family, i, strings.Join(matched, ", "))
		}
	}
	return labels, nil
}
