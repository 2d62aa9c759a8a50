package embed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/titlecheck/internal/config"
)

func TestNewClientNone(t *testing.T) {
	for _, provider := range []string{"", "none", "NONE"} {
		c, err := NewClient(context.Background(), config.EmbedderConfig{Provider: provider})
		require.NoError(t, err)
		assert.Nil(t, c, "provider %q must disable the embedder", provider)
	}
}

func TestNewClientOpenAI(t *testing.T) {
	c, err := NewClient(context.Background(), config.EmbedderConfig{
		Provider: "openai",
		APIKey:   "test-key",
		Model:    "text-embedding-3-small",
	})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, c)
}

func TestNewClientOllama(t *testing.T) {
	c, err := NewClient(context.Background(), config.EmbedderConfig{
		Provider: "ollama",
		BaseURL:  "http://localhost:11434",
		Model:    "nomic-embed-text",
	})
	require.NoError(t, err)
	// Ollama is served through the OpenAI-compatible client.
	assert.IsType(t, &OpenAIClient{}, c)
}

func TestNewClientUnsupported(t *testing.T) {
	_, err := NewClient(context.Background(), config.EmbedderConfig{Provider: "sbert"})
	assert.ErrorContains(t, err, "unsupported embedder provider")
}
