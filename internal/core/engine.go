// Package core implements the similarity matching engine: four independent
// signals scored against a corpus of registered titles, orchestrated under an
// early-break policy and merged into a single verdict.
package core

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/agenthands/titlecheck/internal/config"
	"github.com/agenthands/titlecheck/internal/core/editdist"
	"github.com/agenthands/titlecheck/internal/core/model"
	"github.com/agenthands/titlecheck/internal/core/phonetic"
)

// DefaultThreshold is applied when a request carries no threshold.
const DefaultThreshold = 0.75

// ErrInvalidThreshold is returned for thresholds outside [0,1]. Out-of-range
// values are rejected, never silently clamped or defaulted.
var ErrInvalidThreshold = errors.New("threshold must be a number between 0 and 1")

// LexicalScorer scores the candidate against every corpus entry in one joint
// call; the vector space depends on the full vocabulary present at call time.
type LexicalScorer interface {
	ScoreAll(candidate string, corpus []string) []float64
}

// SemanticScorer is the optional embedding-backed signal. Available is
// checked before the expensive pass; false means the signal is skipped.
type SemanticScorer interface {
	Available() bool
	ScoreAll(ctx context.Context, candidate string, corpus []string) ([]float64, error)
}

type Engine struct {
	Lexical  LexicalScorer
	Semantic SemanticScorer

	defaultThreshold    float64
	maxCheapBreakTitles int
}

func NewEngine(lexical LexicalScorer, semantic SemanticScorer, cfg config.EngineConfig) *Engine {
	threshold := cfg.DefaultThreshold
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	maxBreak := cfg.MaxCheapBreakTitles
	if maxBreak < 1 {
		maxBreak = 1
	}

	return &Engine{
		Lexical:             lexical,
		Semantic:            semantic,
		defaultThreshold:    threshold,
		maxCheapBreakTitles: maxBreak,
	}
}

// entry is one usable corpus title: the trimmed original for output, the
// lower-cased form for scoring, and its position for tie-breaking.
type entry struct {
	title string
	lower string
	order int
}

// Check scores candidate against the corpus snapshot and returns the verdict
// with every match clearing the threshold, ranked by descending score.
//
// A nil threshold means the engine default; an out-of-range threshold is an
// ErrInvalidThreshold. Empty corpus entries are skipped. The expensive
// lexical and semantic signals only run when the cheap pass is inconclusive.
func (e *Engine) Check(ctx context.Context, candidate string, corpus []string, threshold *float64) (model.CheckResult, error) {
	th := e.defaultThreshold
	if threshold != nil {
		if math.IsNaN(*threshold) || *threshold < 0 || *threshold > 1 {
			return model.CheckResult{}, fmt.Errorf("%w: got %v", ErrInvalidThreshold, *threshold)
		}
		th = *threshold
	}

	cand := strings.ToLower(strings.TrimSpace(candidate))
	if cand == "" {
		return model.CheckResult{}, errors.New("candidate title is empty")
	}

	entries := usableEntries(corpus)
	if len(entries) == 0 {
		return model.CheckResult{Verdict: model.VerdictUnique, Matches: []model.Match{}}, nil
	}

	matches := e.cheapPass(cand, entries, th)

	if !e.shouldBreakEarly(matches) {
		matches = append(matches, e.expensivePass(ctx, cand, entries, th)...)
	}

	matches = dedupe(matches)
	rank(matches, entries)

	verdict := model.VerdictUnique
	if len(matches) > 0 {
		verdict = model.VerdictNotUnique
	}
	return model.CheckResult{Verdict: verdict, Matches: matches}, nil
}

func usableEntries(corpus []string) []entry {
	entries := make([]entry, 0, len(corpus))
	for i, raw := range corpus {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		entries = append(entries, entry{
			title: trimmed,
			lower: strings.ToLower(trimmed),
			order: i,
		})
	}
	return entries
}

// cheapPass runs the two pairwise signals over every entry. Edit distance
// also probes the candidate with its word order reversed, which catches
// reordered titles at pairwise cost.
func (e *Engine) cheapPass(cand string, entries []entry, th float64) []model.Match {
	candCode := phonetic.Encode(cand)
	revCand := reverseWords(cand)

	var matches []model.Match
	for _, en := range entries {
		edit := editdist.Score(cand, en.lower)
		if rev := editdist.Score(revCand, en.lower); rev > edit {
			edit = rev
		}
		if edit >= th {
			matches = append(matches, model.Match{
				Title:      en.title,
				Similarity: round4(edit),
				Signal:     model.SignalLevenshtein,
			})
		}

		if score := phonetic.ScoreEncoded(candCode, phonetic.Encode(en.lower)); score >= th {
			matches = append(matches, model.Match{
				Title:      en.title,
				Similarity: score,
				Signal:     model.SignalPhonetic,
			})
		}
	}
	return matches
}

// shouldBreakEarly reports whether the cheap-pass matches are conclusive: a
// small number of distinct titles (one, unless configured wider) is treated
// as an obvious near-duplicate and the expensive pass is skipped. An empty or
// ambiguous cheap result falls through to the finer-grained signals.
func (e *Engine) shouldBreakEarly(matches []model.Match) bool {
	if len(matches) == 0 {
		return false
	}
	distinct := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		distinct[m.Title] = struct{}{}
	}
	return len(distinct) <= e.maxCheapBreakTitles
}

// expensivePass runs the lexical and semantic signals concurrently, each in
// one joint call over the whole corpus. A failing semantic scorer degrades to
// zero matches from that signal, never a failed call.
func (e *Engine) expensivePass(ctx context.Context, cand string, entries []entry, th float64) []model.Match {
	lowered := make([]string, len(entries))
	for i, en := range entries {
		lowered[i] = en.lower
	}

	var (
		wg        sync.WaitGroup
		lexScores []float64
		semScores []float64
		semErr    error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		lexScores = e.Lexical.ScoreAll(cand, lowered)
	}()

	semAvailable := e.Semantic != nil && e.Semantic.Available()
	if semAvailable {
		wg.Add(1)
		go func() {
			defer wg.Done()
			semScores, semErr = e.Semantic.ScoreAll(ctx, cand, lowered)
		}()
	}
	wg.Wait()

	if semErr != nil {
		log.Warn().Err(semErr).Msg("semantic scorer failed, skipping signal")
		semScores = nil
	}
	if !semAvailable {
		log.Debug().Msg("no embedding model configured, semantic signal skipped")
	}

	var matches []model.Match
	for i, en := range entries {
		if lexScores != nil && lexScores[i] >= th {
			matches = append(matches, model.Match{
				Title:      en.title,
				Similarity: round4(lexScores[i]),
				Signal:     model.SignalLexical,
			})
		}
		if semScores != nil && semScores[i] >= th {
			matches = append(matches, model.Match{
				Title:      en.title,
				Similarity: round4(semScores[i]),
				Signal:     model.SignalSemantic,
			})
		}
	}
	return matches
}

// dedupe collapses matches sharing (title, signal), keeping the best score.
// Each scorer runs at most once per call, so this is a double-counting guard
// rather than a correctness requirement. Matches for the same title under
// different signals stay distinct.
func dedupe(matches []model.Match) []model.Match {
	type key struct {
		title  string
		signal model.SignalType
	}

	best := make(map[key]model.Match, len(matches))
	for _, m := range matches {
		k := key{m.Title, m.Signal}
		if prev, ok := best[k]; !ok || m.Similarity > prev.Similarity {
			best[k] = m
		}
	}

	out := make([]model.Match, 0, len(best))
	for _, m := range best {
		out = append(out, m)
	}
	return out
}

// rank sorts by descending score, then by signal priority (most informative
// first), then by corpus insertion order for full determinism.
func rank(matches []model.Match, entries []entry) {
	order := make(map[string]int, len(entries))
	for _, en := range entries {
		if _, ok := order[en.title]; !ok {
			order[en.title] = en.order
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Similarity != b.Similarity {
			return a.Similarity > b.Similarity
		}
		if a.Signal.Priority() != b.Signal.Priority() {
			return a.Signal.Priority() > b.Signal.Priority()
		}
		return order[a.Title] < order[b.Title]
	})
}

func reverseWords(s string) string {
	words := strings.Fields(s)
	for i, j := 0, len(words)-1; i < j; i, j = i+1, j-1 {
		words[i], words[j] = words[j], words[i]
	}
	return strings.Join(words, " ")
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
