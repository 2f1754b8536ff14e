package util

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatVotes formats a raw vote count with thousands separators. Values
// that are not integers are returned unchanged.
func FormatVotes(raw string) string {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return raw
	}
	return humanize.Comma(n)
}

// FormatRuntime renders a runtime in minutes as e.g. "2h 35m".
func FormatRuntime(raw string) string {
	mins, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || mins <= 0 {
		return raw
	}
	if mins < 60 {
		return strconv.Itoa(mins) + "m"
	}
	return strconv.Itoa(mins/60) + "h " + strconv.Itoa(mins%60) + "m"
}

// Truncate shortens s to at most maxLen runes, ending in "...".
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// TruncatePath truncates a path from the left, keeping the rightmost part visible.
func TruncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-maxLen+3:]
}
