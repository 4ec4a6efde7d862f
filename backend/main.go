package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := LoadConfig(os.Getenv("GOMOKU_CONFIG"))
	if err != nil {
		fallback := newLogger("info", false)
		fallback.Fatal().Err(err).Msg("config")
	}
	logger := newLogger(cfg.LogLevel, cfg.LogJSON)
	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("backend-exited")
	}
}

func run(cfg Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var archive GameArchive
	if cfg.DatabasePath != "" {
		store, err := OpenGameStore(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer store.Close()
		archive = store
		logger.Info().Str("path", cfg.DatabasePath).Msg("archive-open")
	}

	configs := NewConfigStore(cfg)
	hub := NewHub()
	controller := NewGameController(configs, archive, logger)
	controller.SetUpdateListener(hub.Publish)
	if err := controller.StartGame(cfg.Game, nil); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: newRouter(&server{controller: controller, configs: configs, hub: hub, logger: logger}),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return hub.Run(ctx)
	})
	g.Go(func() error {
		return runTurnLoop(ctx, controller, configs, logger)
	})
	g.Go(func() error {
		logger.Info().Str("addr", cfg.Addr).Msg("backend-listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info().Msg("backend-shutting-down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("graceful shutdown failed")
			return srv.Close()
		}
		return nil
	})
	return g.Wait()
}

// runTurnLoop keeps the current game moving while auto play is on. Human turns
// block inside PlayTurn until a move arrives through /api/human_move.
func runTurnLoop(ctx context.Context, controller *GameController, configs *ConfigStore, logger zerolog.Logger) error {
	for {
		cfg := configs.Get()
		applied := false
		if cfg.AutoPlay {
			var err error
			applied, err = controller.PlayTurn(ctx)
			if err != nil && ctx.Err() == nil && !IsCancellation(err) {
				logger.Warn().Err(err).Msg("turn-rejected")
			}
		}
		if applied {
			continue
		}
		delay := time.Duration(cfg.TurnDelayMs) * time.Millisecond
		if delay <= 0 {
			delay = 50 * time.Millisecond
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}
	}
}
