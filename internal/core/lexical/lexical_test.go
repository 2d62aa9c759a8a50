package lexical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreAllIdenticalEntry(t *testing.T) {
	s := NewScorer()
	scores := s.ScoreAll("the great adventure", []string{
		"the great adventure",
		"great adventures",
		"totally different show",
	})

	require.Len(t, scores, 3)
	assert.InDelta(t, 1.0, scores[0], 1e-9)
	assert.Greater(t, scores[1], 0.0, "shared term must produce a positive score")
	assert.Less(t, scores[1], scores[0])
	assert.Equal(t, 0.0, scores[2], "disjoint vocabulary must score zero")
}

func TestScoreAllRange(t *testing.T) {
	s := NewScorer()
	scores := s.ScoreAll("alpha beta gamma", []string{
		"alpha beta gamma",
		"alpha beta",
		"beta",
		"delta epsilon",
		"",
	})
	for i, sc := range scores {
		assert.GreaterOrEqual(t, sc, 0.0, "index %d", i)
		assert.LessOrEqual(t, sc, 1.0, "index %d", i)
	}
}

func TestScoreAllOrderInvariant(t *testing.T) {
	s := NewScorer()
	corpus := []string{
		"the great adventure",
		"great adventures",
		"space quest crystal",
		"totally different show",
	}
	permuted := []string{corpus[2], corpus[0], corpus[3], corpus[1]}

	orig := s.ScoreAll("great adventure", corpus)
	perm := s.ScoreAll("great adventure", permuted)

	byTitle := make(map[string]float64, len(corpus))
	for i, title := range corpus {
		byTitle[title] = orig[i]
	}
	for i, title := range permuted {
		assert.InDelta(t, byTitle[title], perm[i], 1e-12, "score for %q must not depend on corpus order", title)
	}
}

func TestScoreAllEmptyCandidate(t *testing.T) {
	s := NewScorer()
	scores := s.ScoreAll("", []string{"anything", "at all"})
	require.Len(t, scores, 2)
	assert.Equal(t, []float64{0, 0}, scores)
}

func TestScoreAllEmptyCorpus(t *testing.T) {
	s := NewScorer()
	assert.Empty(t, s.ScoreAll("whatever", nil))
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"the", "great", "adventure"}, tokenize("The GREAT-Adventure!"))
	assert.Equal(t, []string{"show", "2024"}, tokenize("Show 2024"))
	// single-rune tokens are dropped
	assert.Equal(t, []string{"team"}, tokenize("a team"))
	assert.Empty(t, tokenize("!!!"))
}
