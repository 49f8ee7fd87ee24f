package crawl

import "fmt"

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
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

// Summary is the one-line tally printed after a parse run.
func Summary(r *Result) string {
	s := fmt.Sprintf("Parsed %d articles, %d with errors", r.Processed(), r.Errors)
	if r.Skipped > 0 {
		s += fmt.Sprintf(" (%d skipped)", r.Skipped)
	}
	return s
}

// DownloadSummary is the one-line tally printed after a download run.
func DownloadSummary(name string, r *Result) string {
	return fmt.Sprintf("%s: downloaded %d articles (%d already present, %d repeated, %s) with %d errors",
		name, r.OK+r.Existing, r.Existing, r.Skipped, FormatBytes(r.Bytes), r.Errors)
}
