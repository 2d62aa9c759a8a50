// Package lexical scores titles in a TF-IDF vector space built jointly over
// the candidate and the corpus. Because IDF weights depend on the full
// vocabulary present at call time, scoring cannot be decomposed into
// independent pairwise calls.
package lexical

import (
	"math"
	"strings"
	"unicode"
)

// Scorer builds a term-frequency/inverse-document-frequency space per call
// and ranks corpus entries by cosine similarity against the candidate.
// It is stateless and safe for concurrent use.
type Scorer struct{}

func NewScorer() *Scorer {
	return &Scorer{}
}

// ScoreAll returns one similarity in [0,1] per corpus entry, index-aligned
// with the input. Permuting the corpus permutes the scores identically.
//
// IDF is smoothed as ln((1+N)/(1+df)) + 1 and vectors are L2-normalized, so
// cosine similarity reduces to a dot product.
func (s *Scorer) ScoreAll(candidate string, corpus []string) []float64 {
	docs := make([][]string, 0, len(corpus)+1)
	docs = append(docs, tokenize(candidate))
	for _, t := range corpus {
		docs = append(docs, tokenize(t))
	}

	n := len(docs)
	df := make(map[string]int)
	counts := make([]map[string]float64, n)
	for i, toks := range docs {
		c := make(map[string]float64, len(toks))
		for _, tok := range toks {
			c[tok]++
		}
		counts[i] = c
		for tok := range c {
			df[tok]++
		}
	}

	idf := make(map[string]float64, len(df))
	for tok, d := range df {
		idf[tok] = math.Log(float64(1+n)/float64(1+d)) + 1
	}

	vecs := make([]map[string]float64, n)
	for i, c := range counts {
		v := make(map[string]float64, len(c))
		var norm float64
		for tok, tf := range c {
			w := tf * idf[tok]
			v[tok] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for tok := range v {
				v[tok] /= norm
			}
		}
		vecs[i] = v
	}

	query := vecs[0]
	scores := make([]float64, len(corpus))
	for i := 1; i < n; i++ {
		var dot float64
		for tok, w := range query {
			dot += w * vecs[i][tok]
		}
		// Guard against float drift above 1.0 on identical vectors.
		if dot > 1.0 {
			dot = 1.0
		}
		scores[i-1] = dot
	}
	return scores
}

// tokenize lower-cases, splits on non-alphanumeric runs and drops tokens
// shorter than two runes (single characters carry no lexical weight).
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	toks := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= 2 {
			toks = append(toks, f)
		}
	}
	return toks
}
