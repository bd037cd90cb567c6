package platform

import "strings"

// normalizeName lowercases and trims a uname field.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
