package ui

import (
	"fmt"

	"github.com/kobaltcore/renutil/internal/core/download"
)

// DownloadProgress returns a progress callback that renders an in-place
// progress line for one named download. The line is finished with a newline
// once all bytes have arrived.
func DownloadProgress(name string) download.ProgressFunc {
	done := false
	return func(written, total int64) {
		if done {
			return
		}
		percent := float64(written) / float64(total) * 100
		fmt.Printf("\r%s  %s / %s (%3.0f%%)",
			BoldStyle.Render(name),
			formatBytes(written),
			DimStyle.Render(formatBytes(total)),
			percent,
		)
		if written >= total {
			fmt.Println()
			done = true
		}
	}
}

// formatBytes formats a byte count into a human-readable string
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
