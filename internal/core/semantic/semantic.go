// Package semantic scores titles by cosine similarity between meaning
// embeddings produced by an external model. The signal is optional: without
// a configured embedder the scorer reports itself unavailable and the engine
// runs on the remaining signals.
package semantic

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/agenthands/titlecheck/internal/embed"
)

const defaultTimeout = 10 * time.Second

type Scorer struct {
	embedder embed.Client
	timeout  time.Duration

	// cache holds corpus embeddings for one corpus generation, swapped
	// atomically so a scoring call never blends two generations.
	cache atomic.Pointer[corpusCache]
}

type corpusCache struct {
	fingerprint uint64
	byTitle     map[string][]float32
}

func New(embedder embed.Client, timeout time.Duration) *Scorer {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Scorer{
		embedder: embedder,
		timeout:  timeout,
	}
}

// Available reports whether an embedding model is configured. The engine
// checks this before the expensive pass and treats false as "signal skipped".
func (s *Scorer) Available() bool {
	return s != nil && s.embedder != nil
}

// ScoreAll returns one similarity in [0,1] per corpus entry, index-aligned
// with the input. Cosine similarity is natively [-1,1]; negative values are
// clamped to 0 rather than rescaled so thresholds keep the same meaning
// across signals.
func (s *Scorer) ScoreAll(ctx context.Context, candidate string, corpus []string) ([]float64, error) {
	if !s.Available() {
		return nil, fmt.Errorf("no embedding model configured")
	}
	if len(corpus) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	vectors, err := s.corpusVectors(ctx, corpus)
	if err != nil {
		return nil, fmt.Errorf("failed to embed corpus: %w", err)
	}

	queryVec, err := s.embedder.Embed(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("failed to embed candidate: %w", err)
	}

	scores := make([]float64, len(corpus))
	for i, title := range corpus {
		scores[i] = cosine(queryVec, vectors[title])
	}
	return scores, nil
}

// corpusVectors returns embeddings keyed by title, reusing the cached
// generation when the corpus fingerprint matches. Keying by title instead of
// index keeps a permuted corpus a cache hit.
func (s *Scorer) corpusVectors(ctx context.Context, corpus []string) (map[string][]float32, error) {
	fp := Fingerprint(corpus)

	if cached := s.cache.Load(); cached != nil && cached.fingerprint == fp {
		return cached.byTitle, nil
	}

	vecs, err := s.embedder.EmbedBatch(ctx, corpus)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(corpus) {
		return nil, fmt.Errorf("expected %d corpus embeddings, got %d", len(corpus), len(vecs))
	}

	byTitle := make(map[string][]float32, len(corpus))
	for i, title := range corpus {
		byTitle[title] = vecs[i]
	}

	s.cache.Store(&corpusCache{fingerprint: fp, byTitle: byTitle})
	return byTitle, nil
}

// Fingerprint hashes the corpus contents order-independently, so a permuted
// corpus keeps its cached embeddings while any added, removed or edited
// title forces a rebuild.
func Fingerprint(corpus []string) uint64 {
	sorted := make([]string, len(corpus))
	copy(sorted, corpus)
	sort.Strings(sorted)

	h := xxhash.New()
	for _, title := range sorted {
		_, _ = h.WriteString(title)
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}

func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim < 0 {
		return 0.0
	}
	if sim > 1 {
		return 1.0
	}
	return sim
}
