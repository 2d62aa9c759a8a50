package model

// SignalType identifies which similarity signal produced a match.
// The values are the wire names used in API responses.
type SignalType string

const (
	SignalLevenshtein SignalType = "levenshtein"
	SignalPhonetic    SignalType = "phonetic"
	SignalLexical     SignalType = "lexical"
	SignalSemantic    SignalType = "semantic"
)

// Priority orders signals by how informative they are, most informative
// first. Used as a tie-breaker when ranking matches with equal scores.
func (s SignalType) Priority() int {
	switch s {
	case SignalSemantic:
		return 3
	case SignalLexical:
		return 2
	case SignalPhonetic:
		return 1
	case SignalLevenshtein:
		return 0
	default:
		return -1
	}
}

type Verdict string

const (
	VerdictUnique    Verdict = "Unique"
	VerdictNotUnique Verdict = "Not Unique"
)

// Match records one corpus title clearing the threshold under one signal.
// The same title may appear in several Matches with different signals.
type Match struct {
	Title      string     `json:"title"`
	Similarity float64    `json:"similarity"`
	Signal     SignalType `json:"type"`
}

// CheckResult is the engine's final answer for one candidate title.
type CheckResult struct {
	Verdict Verdict `json:"status"`
	Matches []Match `json:"matches"`
}
