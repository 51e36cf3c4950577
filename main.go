package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordplay/internal/audio"
	"github.com/robalobadob/wordplay/internal/config"
	"github.com/robalobadob/wordplay/internal/content"
	"github.com/robalobadob/wordplay/internal/httpserver"
	"github.com/robalobadob/wordplay/internal/scheduler"
	"github.com/robalobadob/wordplay/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	setupLogger(cfg)

	if err := content.Init(cfg.ContentFile); err != nil {
		log.Fatal().Err(err).Str("file", cfg.ContentFile).Msg("failed to load game content")
	}
	stats := content.Stats()
	log.Info().
		Int("quiz", stats["quiz"]).
		Int("pairs", stats["pairs"]).
		Int("words", stats["words"]).
		Msg("content loaded")

	mem := store.NewMemoryStore()
	janitor := scheduler.New(mem, cfg.Session.TTL, cfg.Session.SweepInterval)
	if err := janitor.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start session janitor")
	}
	defer janitor.Stop()

	clips := audio.NewClient(nil, cfg.AudioTimeout)
	srv := httpserver.New(httpserver.Options{
		Content: content.Current(),
		Store:   mem,
		Audio:   clips,
		Timing:  cfg.Game,
		Origins: cfg.ClientOrigins,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting wordplay server")
		if err := srv.Start(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server exited")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	clips.Wait()
}

func setupLogger(cfg *config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
