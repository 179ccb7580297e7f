package crawl

import (
	"fmt"

	"github.com/fwojciec/phylotext"
)

// TruncateName shortens a family name for display, keeping the start.
func TruncateName(name string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	r := []rune(name)
	if len(r) <= maxLen {
		return name
	}
	if maxLen < 4 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatProgress renders one progress line, e.g. "[3/120] Bear".
func FormatProgress(p phylotext.FetchProgress) string {
	line := fmt.Sprintf("[%d/%d] %s", p.Completed, p.Total, TruncateName(p.Family, 40))
	switch {
	case p.Skipped:
		line += " (cached)"
	case p.Error != nil:
		line += " failed: " + phylotext.ErrorMessage(p.Error)
	}
	return line
}

// FormatSummary renders the totals of a Gather run.
func FormatSummary(r *Result) string {
	return fmt.Sprintf("saved %d pages (%s), %d cached, %d failed",
		r.Saved, FormatBytes(r.Bytes), r.Skipped, len(r.Failures))
}
