package phylotext

import (
	"maps"
	"slices"
)

// Report is the contingency table of one clustering run against the clades,
// with its summary statistics.
type Report struct {
	Method string

	// Labels are the clade columns in window order.
	Labels []string

	// Rows has one row per cluster id; Rows[c][j] counts members of cluster
	// c whose clade is Labels[j].
	Rows [][]int

	// Totals is the size of every clade set, for baseline comparison.
	Totals map[string]int

	// Assigned is the number of (index, cluster) pairs counted.
	Assigned int

	// Purity is the share of assigned families in their cluster's majority clade.
	Purity float64

	Silhouette *float64
}

// Cell returns the count for a cluster and clade label.
func (r *Report) Cell(cluster int, label string) int {
	j := slices.Index(r.Labels, label)
	if cluster < 0 || cluster >= len(r.Rows) || j < 0 {
		return 0
	}
	return r.Rows[cluster][j]
}

// Evaluate cross-tabulates a cluster assignment against the clades through
// the registry. Returns EPARTITION if the clades do not partition the
// registry and ECONTRACT if the assignment is malformed.
func Evaluate(method string, a *ClusterAssignment, reg *Registry, tax *Taxonomy) (*Report, error) {
	truth, err := tax.GroundTruth(reg)
	if err != nil {
		return nil, err
	}

	if a == nil || a.K <= 0 {
		return nil, Errorf(ECONTRACT, "assignment must have a positive cluster count")
	}

	labels := tax.Labels()
	column := make(map[string]int, len(labels))
	for j, l := range labels {
		column[l] = j
	}

	rows := make([][]int, a.K)
	for c := range rows {
		rows[c] = make([]int, len(labels))
	}

	indices := slices.Sorted(maps.Keys(a.Clusters))
	for _, i := range indices {
		c := a.Clusters[i]
		if i < 0 || i >= reg.Len() {
			return nil, Errorf(ECONTRACT, "index %d outside [0, %d)", i, reg.Len())
		}
		if c < 0 || c >= a.K {
			name, _ := reg.Name(i)
			return nil, Errorf(ECONTRACT, "family %q (index %d) assigned to cluster %d outside [0, %d)", name, i, c, a.K)
		}
		rows[c][column[truth[i]]]++
	}

	report := &Report{
		Method:     method,
		Labels:     labels,
		Rows:       rows,
		Totals:     tax.Totals(),
		Assigned:   len(indices),
		Silhouette: a.Silhouette,
	}
	if report.Assigned > 0 {
		var majority int
		for _, row := range rows {
			majority += slices.Max(row)
		}
		report.Purity = float64(majority) / float64(report.Assigned)
	}
	return report, nil
}
