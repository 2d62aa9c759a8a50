package core

import (
	"context"
)

type MockLexical struct {
	Scores []float64
	Calls  int
}

func (m *MockLexical) ScoreAll(candidate string, corpus []string) []float64 {
	m.Calls++
	if m.Scores != nil {
		return m.Scores
	}
	return make([]float64, len(corpus))
}

type MockSemantic struct {
	Availability bool
	Scores       []float64
	Err          error
	Calls        int
}

func (m *MockSemantic) Available() bool {
	return m.Availability
}

func (m *MockSemantic) ScoreAll(ctx context.Context, candidate string, corpus []string) ([]float64, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Scores != nil {
		return m.Scores, nil
	}
	return make([]float64, len(corpus)), nil
}
