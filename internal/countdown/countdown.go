// Package countdown converts between a target instant and the remaining
// whole seconds shown to the player.
package countdown

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	secondsPerDay    = 86400
	secondsPerHour   = 3600
	secondsPerMinute = 60
)

// RemainingSeconds returns the whole seconds from now until target, rounded
// to the nearest second. The result is negative once target has passed.
func RemainingSeconds(target, now time.Time) int {
	return int(math.Round(target.Sub(now).Seconds()))
}

// Format renders seconds as days, hours, minutes and seconds, omitting zero
// units. Zero and negative values render as "0 seconds".
func Format(seconds int) string {
	if seconds <= 0 {
		return "0 seconds"
	}

	days := seconds / secondsPerDay
	hours := seconds % secondsPerDay / secondsPerHour
	minutes := seconds % secondsPerHour / secondsPerMinute
	secs := seconds % secondsPerMinute

	parts := make([]string, 0, 4)
	parts = appendUnit(parts, days, "day")
	parts = appendUnit(parts, hours, "hour")
	parts = appendUnit(parts, minutes, "minute")
	parts = appendUnit(parts, secs, "second")
	return strings.Join(parts, " ")
}

func appendUnit(parts []string, n int, unit string) []string {
	switch {
	case n == 0:
		return parts
	case n == 1:
		return append(parts, fmt.Sprintf("1 %s", unit))
	default:
		return append(parts, fmt.Sprintf("%d %ss", n, unit))
	}
}

// Target resolves a configured countdown target. The value is either an
// RFC 3339 timestamp or a Go duration counted from now.
func Target(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("countdown: empty target")
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("countdown: target %q is neither RFC 3339 nor a duration: %w", value, err)
	}
	return now.Add(d), nil
}
