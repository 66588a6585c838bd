package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Regular expression to clean up excessive newlines in reasons.
var multipleNewlinesRegex = regexp.MustCompile(`\n{3,}`)

// TruncateString truncates a string to a maximum number of runes.
func TruncateString(s string, maxLength int) string {
	if utf8.RuneCountInString(s) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return string([]rune(s)[:maxLength])
	}
	return string([]rune(s)[:maxLength-3]) + "..."
}

// NormalizeReason trims a reason, collapses runs of blank lines and removes backticks
// so it renders cleanly inside embeds.
func NormalizeReason(s string) string {
	s = multipleNewlinesRegex.ReplaceAllString(s, "\n\n")
	s = strings.TrimSpace(s)
	return strings.ReplaceAll(s, "`", "")
}

// FormatUser formats a user as "name (<@id>)", or only the mention when the name is empty.
func FormatUser(name string, id uint64) string {
	if name == "" {
		return fmt.Sprintf("<@%d>", id)
	}
	return fmt.Sprintf("%s (<@%d>)", name, id)
}
