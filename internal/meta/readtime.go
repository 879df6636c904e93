// Package meta derives display values from raw post fields: read time
// estimates and publish date formatting. Every function is pure.
package meta

import "strings"

// WordsPerMinute is the reading speed used for read time estimates.
const WordsPerMinute = 200

// EstimateReadMinutes returns the minutes needed to read raw at
// WordsPerMinute, rounded up. The result is never below 1.
func EstimateReadMinutes(raw string) int {
	return ReadMinutes(raw, WordsPerMinute)
}

// ReadMinutes is EstimateReadMinutes with a configurable reading speed.
// A non-positive wpm uses WordsPerMinute.
func ReadMinutes(raw string, wpm int) int {
	if wpm <= 0 {
		wpm = WordsPerMinute
	}
	words := len(strings.Fields(raw))
	minutes := (words + wpm - 1) / wpm
	if minutes < 1 {
		return 1
	}
	return minutes
}
