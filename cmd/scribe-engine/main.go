package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/meetscribe/scribe-engine/internal/ai"
	"github.com/meetscribe/scribe-engine/internal/api"
	"github.com/meetscribe/scribe-engine/internal/auth"
	"github.com/meetscribe/scribe-engine/internal/config"
	"github.com/meetscribe/scribe-engine/internal/media"
	"github.com/meetscribe/scribe-engine/internal/summarize"
)

var version = "dev"

func main() {
	var overrides config.Overrides
	flag.StringVar(&overrides.EnvFile, "env-file", "", "path to .env file")
	flag.StringVar(&overrides.HTTPAddr, "addr", "", "HTTP listen address")
	flag.StringVar(&overrides.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	flag.StringVar(&overrides.UploadDir, "upload-dir", "", "scratch directory for uploads")
	flag.StringVar(&overrides.OutputDir, "output-dir", "", "scratch directory for extracted audio")
	flag.Parse()

	cfg, err := config.Load(overrides)
	if err != nil {
		early := zerolog.New(os.Stderr).With().Timestamp().Logger()
		early.Fatal().Err(err).Msg("failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).With().Timestamp().Logger().Level(level)
	log.Info().Str("version", version).Msg("scribe-engine starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// External AI services: live client when a key is present, otherwise a
	// stub that reports not_configured from the health endpoint.
	var client ai.Client
	if cfg.GroqAPIKey != "" {
		client = ai.NewGroqClient(ai.Options{
			APIKey:          cfg.GroqAPIKey,
			BaseURL:         cfg.GroqBaseURL,
			TranscribeModel: cfg.TranscribeModel,
			ChatModel:       cfg.ChatModel,
		})
		log.Info().Str("transcribe_model", cfg.TranscribeModel).Str("chat_model", cfg.ChatModel).
			Msg("ai client configured")
	} else {
		client = ai.Unconfigured{}
		log.Warn().Msg("GROQ_API_KEY not set, ai features disabled")
	}

	store, err := media.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create upload dir")
	}
	extractor, err := media.NewExtractor(cfg.FFmpegPath, cfg.FFprobePath, cfg.OutputDir,
		media.NewExecutor(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create output dir")
	}

	deps := api.Deps{
		Users:     auth.NewIdentityStore(),
		Sessions:  auth.NewSessionStore(cfg.SessionTTL),
		Media:     store,
		Extractor: extractor,
		AI:        client,
		Engine:    summarize.NewEngine(client, log),
	}

	httpLog := log.With().Str("component", "http").Logger()
	srv := api.NewServer(cfg, deps, httpLog)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("http server error")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown error")
	}

	log.Info().Msg("scribe-engine stopped")
}
