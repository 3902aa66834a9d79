package pure_utils

import (
	"strings"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// SplitAndTrim flattens a list of possibly comma separated values, trims every entry and
// drops the empty ones. Order of first appearance is kept.
func SplitAndTrim(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// FoldCase returns a representation of s suitable for caseless comparisons.
func FoldCase(s string) string {
	return folder.String(s)
}

// ContainsFold reports whether needle is within haystack, ignoring case.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(FoldCase(haystack), FoldCase(needle))
}
