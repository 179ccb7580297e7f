package phylotext

import "slices"

// Registry is the bijection between dense indices [0, N) and the sorted set
// of accepted family names. Index i always maps to the i-th name in byte
// order, so rebuilding from the same names reproduces the same mapping.
type Registry struct {
	names []string
	index map[string]int
}

// NewRegistry builds a registry from a family list. The input is sorted and
// deduplicated before indices are assigned; it is not modified.
func NewRegistry(names []string) *Registry {
	sorted := slices.Clone(names)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	index := make(map[string]int, len(sorted))
	for i, name := range sorted {
		index[name] = i
	}
	return &Registry{names: sorted, index: index}
}

// Len returns the number of registered families.
func (r *Registry) Len() int {
	return len(r.names)
}

// Name returns the family at index i.
func (r *Registry) Name(i int) (string, bool) {
	if i < 0 || i >= len(r.names) {
		return "", false
	}
	return r.names[i], true
}

// Index returns the index of a family.
func (r *Registry) Index(name string) (int, bool) {
	i, ok := r.index[name]
	return i, ok
}

// Names returns all families in index order.
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

// Equal reports whether both registries hold the same mapping.
func (r *Registry) Equal(other *Registry) bool {
	if r == nil || other == nil {
		return r == other
	}
	return slices.Equal(r.names, other.names)
}
