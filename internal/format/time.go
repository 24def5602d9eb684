// Package format holds the small presentation helpers used by the CLI.
package format

import (
	"fmt"
	"time"
)

// TimeAgo renders a coarse relative timestamp ("3h ago", "just now").
func TimeAgo(t time.Time) string {
	diff := time.Since(t)

	days := int(diff.Hours()) / 24
	hours := int(diff.Hours())
	minutes := int(diff.Minutes())

	switch {
	case days > 0:
		return fmt.Sprintf("%dd ago", days)
	case hours > 0:
		return fmt.Sprintf("%dh ago", hours)
	case minutes > 0:
		return fmt.Sprintf("%dm ago", minutes)
	default:
		return "just now"
	}
}

// ClockTime renders a 12-hour wall-clock timestamp for message rows.
func ClockTime(t time.Time) string {
	return t.Format("03:04 PM")
}
