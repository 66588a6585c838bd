package utils

import (
	"fmt"
	"time"
)

// FormatCooldown converts a remaining cooldown into a short human-readable string.
// Partial seconds are rounded up so the user never retries too early.
func FormatCooldown(d time.Duration) string {
	seconds := int((d + time.Second - 1) / time.Second)

	switch {
	case seconds <= 1:
		return "1 second"
	case seconds < 60:
		return fmt.Sprintf("%d seconds", seconds)
	}

	minutes := (seconds + 59) / 60
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}
