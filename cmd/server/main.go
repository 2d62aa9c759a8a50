package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/agenthands/titlecheck/internal/config"
	"github.com/agenthands/titlecheck/internal/core"
	"github.com/agenthands/titlecheck/internal/core/lexical"
	"github.com/agenthands/titlecheck/internal/core/semantic"
	"github.com/agenthands/titlecheck/internal/embed"
	"github.com/agenthands/titlecheck/internal/server"
	"github.com/agenthands/titlecheck/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using defaults")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if lvl, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && lvl != zerolog.NoLevel {
		zerolog.SetGlobalLevel(lvl)
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfgPath).Msg("could not load config file, using defaults")
		cfg = config.Default()
	}
	cfg.ApplyEnv()

	ctx := context.Background()

	titleStore, err := store.New(cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize title store")
	}
	defer titleStore.Close(ctx)

	// A missing or broken embedder disables the semantic signal but never
	// the service.
	embedder, err := embed.NewClient(ctx, cfg.Embedder)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize embedder, semantic signal disabled")
		embedder = nil
	}
	if embedder == nil {
		log.Info().Msg("no embedding model configured, running without the semantic signal")
	}

	engine := core.NewEngine(
		lexical.NewScorer(),
		semantic.New(embedder, time.Duration(cfg.Engine.SemanticTimeoutMS)*time.Millisecond),
		cfg.Engine,
	)

	srv := server.New(engine, titleStore)
	r := srv.SetupRouter()

	log.Info().Str("port", cfg.Server.Port).Msg("starting server")
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
