// Package phonetic scores titles by Double Metaphone code equality. It is a
// binary signal: two titles either sound alike (1.0) or they don't (0.0).
package phonetic

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// Encode returns the phonetic code for a title: the primary Double Metaphone
// code of each whitespace-separated word, joined with single spaces. Words
// with no phonetic content (e.g. pure digits) contribute nothing.
func Encode(s string) string {
	words := strings.Fields(s)
	codes := make([]string, 0, len(words))
	for _, w := range words {
		primary, _ := matchr.DoubleMetaphone(w)
		if primary != "" {
			codes = append(codes, primary)
		}
	}
	return strings.Join(codes, " ")
}

// Score returns 1.0 when both titles encode to the same non-empty phonetic
// code and 0.0 otherwise. Never an intermediate value.
func Score(a, b string) float64 {
	return ScoreEncoded(Encode(a), Encode(b))
}

// ScoreEncoded compares two precomputed codes from Encode. Callers scanning a
// corpus repeatedly should encode the candidate once and use this directly.
func ScoreEncoded(codeA, codeB string) float64 {
	if codeA == "" || codeB == "" {
		return 0.0
	}
	if codeA == codeB {
		return 1.0
	}
	return 0.0
}
