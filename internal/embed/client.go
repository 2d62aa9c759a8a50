// Package embed abstracts the external embedding model behind a small client
// interface so the semantic signal can be swapped between providers or
// disabled entirely.
package embed

import (
	"context"
)

type Client interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
