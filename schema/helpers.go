package schema

import "strings"

// AbbreviateName formats "Ada Lovelace" as "Ada L" for narrow table
// columns. Single-word names and emails are returned unchanged.
func AbbreviateName(name string) string {
	parts := strings.Fields(strings.TrimSpace(name))
	if len(parts) >= 2 {
		last := []rune(parts[len(parts)-1])
		return parts[0] + " " + string(last[0])
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return strings.TrimSpace(name)
}
