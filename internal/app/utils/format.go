package utils

import (
	"fmt"
	"time"
)

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatSize renders a byte count with one decimal, stepping B, KB, MB, GB, TB
// by factors of 1024.
func FormatSize(bytes int64) string {
	size := float64(bytes)
	for _, unit := range sizeUnits {
		if size < 1024 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1f TB", size)
}

// FormatDuration renders whole seconds as "N second(s)" or "M minute(s) N second(s)".
func FormatDuration(d time.Duration) string {
	total := int64(d / time.Second)
	if total < 0 {
		total = 0
	}
	minutes := total / 60
	seconds := total % 60

	if minutes > 0 {
		return fmt.Sprintf("%s %s", plural(minutes, "minute"), plural(seconds, "second"))
	}
	return plural(seconds, "second")
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
