package phylotext

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// FormatReport renders a report as an aligned plain-text table followed by
// the clade totals and summary scores.
func FormatReport(r *Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", r.Method)

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "cluster\t%s\t\n", strings.Join(r.Labels, "\t"))
	for c, row := range r.Rows {
		cells := make([]string, len(row))
		for j, n := range row {
			cells[j] = fmt.Sprint(n)
		}
		fmt.Fprintf(tw, "%d\t%s\t\n", c, strings.Join(cells, "\t"))
	}
	totals := make([]string, len(r.Labels))
	for j, l := range r.Labels {
		totals[j] = fmt.Sprint(r.Totals[l])
	}
	fmt.Fprintf(tw, "totals\t%s\t\n", strings.Join(totals, "\t"))
	_ = tw.Flush()

	fmt.Fprintf(&b, "assigned: %d\n", r.Assigned)
	fmt.Fprintf(&b, "purity: %.3f\n", r.Purity)
	if r.Silhouette != nil {
		fmt.Fprintf(&b, "silhouette: %.4f\n", *r.Silhouette)
	}
	return b.String()
}
