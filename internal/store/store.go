// Package store persists registered titles. The engine only ever sees the
// corpus snapshot that List returns; uniqueness of stored titles is exact
// byte equality on the title text.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agenthands/titlecheck/internal/config"
)

type Title struct {
	UUID      string    `json:"uuid"`
	Text      string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type TitleStore interface {
	// Register stores a title, returning the existing record when the exact
	// text is already registered (merge semantics).
	Register(ctx context.Context, text string) (*Title, error)
	// List returns the corpus snapshot in registration order.
	List(ctx context.Context) ([]string, error)
	Exists(ctx context.Context, text string) (bool, error)
	Close(ctx context.Context) error
}

func New(cfg config.StoreConfig) (TitleStore, error) {
	switch strings.ToLower(cfg.Kind) {
	case "", "memory":
		return NewMemoryStore(), nil
	case "memgraph":
		return NewMemgraphStore(cfg.URI, cfg.User, cfg.Password)
	default:
		return nil, fmt.Errorf("unsupported store kind: %s", cfg.Kind)
	}
}
