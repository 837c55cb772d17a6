// Package strutil holds the small text helpers plugins use to pick apart
// raw lines from procfs files and command output.
package strutil

import "strings"

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// Split tokenizes s on runs of whitespace. Leading and trailing whitespace
// never produce empty tokens, so " a  b " yields ["a", "b"] and a
// whitespace-only string yields an empty slice.
func Split(s string) []string {
	fields := strings.Fields(s)
	if fields == nil {
		return []string{}
	}
	return fields
}

// KeyValue splits a "key: value" line at the first separator and trims both
// halves. ok is false when sep does not occur in line.
func KeyValue(line, sep string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(line, sep)
	if !ok {
		return "", "", false
	}
	return Trim(key), Trim(value), true
}
