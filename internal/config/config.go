package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port string `toml:"port"`
}

type EngineConfig struct {
	// DefaultThreshold is applied when a request carries no threshold.
	DefaultThreshold float64 `toml:"default_threshold"`
	// MaxCheapBreakTitles is the largest number of distinct titles the cheap
	// pass may match while still skipping the expensive pass.
	MaxCheapBreakTitles int `toml:"max_cheap_break_titles"`
	SemanticTimeoutMS   int `toml:"semantic_timeout_ms"`
}

type EmbedderConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type StoreConfig struct {
	Kind     string `toml:"kind"`
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Engine   EngineConfig   `toml:"engine"`
	Embedder EmbedderConfig `toml:"embedder"`
	Store    StoreConfig    `toml:"store"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Engine: EngineConfig{
			DefaultThreshold:    0.75,
			MaxCheapBreakTitles: 1,
			SemanticTimeoutMS:   10000,
		},
		Embedder: EmbedderConfig{Provider: "none"},
		Store:    StoreConfig{Kind: "memory"},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides file values with environment variables when present.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("EMBEDDER_PROVIDER"); v != "" {
		c.Embedder.Provider = v
	}
	if v := os.Getenv("EMBEDDER_MODEL"); v != "" {
		c.Embedder.Model = v
	}
	if v := os.Getenv("EMBEDDER_API_KEY"); v != "" {
		c.Embedder.APIKey = v
	}
	if v := os.Getenv("EMBEDDER_BASE_URL"); v != "" {
		c.Embedder.BaseURL = v
	}
	if v := os.Getenv("STORE_KIND"); v != "" {
		c.Store.Kind = v
	}
	if v := os.Getenv("MEMGRAPH_URI"); v != "" {
		c.Store.URI = v
	}
	if v := os.Getenv("MEMGRAPH_USER"); v != "" {
		c.Store.User = v
	}
	if v := os.Getenv("MEMGRAPH_PASSWORD"); v != "" {
		c.Store.Password = v
	}
}
