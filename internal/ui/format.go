package ui

import (
	"fmt"
	"time"
)

// FormatNumber shortens large counts with K/M/B/T suffixes.
func FormatNumber(n uint64) string {
	switch {
	case n < 1_000:
		return fmt.Sprintf("%d", n)
	case n < 1_000_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	case n < 1_000_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n < 1_000_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	default:
		return fmt.Sprintf("%.1fT", float64(n)/1_000_000_000_000)
	}
}

// FormatDuration renders a duration at second/minute/hour/day granularity.
func FormatDuration(d time.Duration) string {
	seconds := d.Seconds()
	switch {
	case seconds < 60:
		return fmt.Sprintf("%.1fs", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%.1fm", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%.1fh", seconds/3600)
	default:
		return fmt.Sprintf("%.1fd", seconds/86400)
	}
}

// FormatRate renders an iterations-per-second figure.
func FormatRate(rate float64) string {
	if rate < 0 {
		rate = 0
	}
	return FormatNumber(uint64(rate)) + "/s"
}
