package normalize

import "strings"

// Email returns the form of an address used for storage and lookups:
// surrounding whitespace trimmed and lower-cased.
func Email(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
