package rpeek

import (
	"strconv"
	"strings"
)

// ShouldPreview reports whether hovering a comments anchor with the given
// label should open a preview. Labels with a leading count of zero
// ("0 comments") are skipped, and so is a single non-numeric word: the old
// layout marks an empty thread with a bare "comments" label.
func ShouldPreview(label string) bool {
	words := strings.Fields(label)
	if len(words) == 0 {
		return false
	}
	n, err := strconv.Atoi(strings.ReplaceAll(words[0], ",", ""))
	if err == nil {
		return n != 0
	}
	return len(words) > 1
}
