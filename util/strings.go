package util

import (
	"strings"
)

// CutMoreStr separates the excerpt of an article from the rest.
const CutMoreStr = "<!-- more -->"

func CutMore(s string) (string, bool) {
	if i := strings.Index(s, CutMoreStr); i >= 0 {
		return s[:i], true
	}
	return s, false
}

// Trunc truncates the input string to a specific length and appends an ellipsis if it was cut.
// It is UTF8-safe, but does not care for HTML.
func Trunc(s string, maxRunes int) string {
	s = strings.TrimSpace(s)
	var runes = 0
	for i := range s {
		if runes == maxRunes {
			return strings.TrimSpace(s[:i]) + "…" // trim spaces again
		}
		runes++
	}
	return s
}
