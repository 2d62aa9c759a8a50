package editdist

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Score returns the normalized Levenshtein similarity between a and b:
// 1 - distance/max(len(a), len(b)), so 1.0 means identical and 0.0 means
// maximally dissimilar. Two empty strings are identical. Comparison is
// case-sensitive; callers lower-case inputs once before scoring.
func Score(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	dist := levenshtein.ComputeDistance(a, b)

	maxLen := utf8.RuneCountInString(a)
	if lb := utf8.RuneCountInString(b); lb > maxLen {
		maxLen = lb
	}

	return 1.0 - float64(dist)/float64(maxLen)
}
