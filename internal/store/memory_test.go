package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/titlecheck/internal/config"
)

func TestMemoryStoreRegisterAndList(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first, err := s.Register(ctx, "The Great Adventure")
	require.NoError(t, err)
	assert.NotEmpty(t, first.UUID)
	assert.Equal(t, "The Great Adventure", first.Text)

	_, err = s.Register(ctx, "Totally Different Show")
	require.NoError(t, err)

	titles, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"The Great Adventure", "Totally Different Show"}, titles, "List must preserve registration order")
}

func TestMemoryStoreRegisterMerges(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first, err := s.Register(ctx, "Same Title")
	require.NoError(t, err)
	second, err := s.Register(ctx, "Same Title")
	require.NoError(t, err)

	assert.Equal(t, first.UUID, second.UUID, "re-registering the exact text must return the existing record")

	titles, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, titles, 1)
}

func TestMemoryStoreRegisterIsCaseSensitive(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.Register(ctx, "Title")
	require.NoError(t, err)
	_, err = s.Register(ctx, "title")
	require.NoError(t, err)

	titles, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, titles, 2, "uniqueness is exact byte equality")
}

func TestMemoryStoreExists(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	ok, err := s.Exists(ctx, "Nope")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Register(ctx, "Yep")
	require.NoError(t, err)

	ok, err = s.Exists(ctx, "Yep")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewFactory(t *testing.T) {
	s, err := New(config.StoreConfig{Kind: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = New(config.StoreConfig{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, err = New(config.StoreConfig{Kind: "postgres"})
	assert.ErrorContains(t, err, "unsupported store kind")
}
