package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quizrush/internal/app"
	"quizrush/internal/config"
	"quizrush/internal/content"
	httpTransport "quizrush/internal/transport/http"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set up logger
	var logger *slog.Logger
	logOpts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Logging.Level),
	}

	if cfg.Logging.Format == "json" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, logOpts))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, logOpts))
	}

	slog.SetDefault(logger)

	logger.Info("starting quizrush server",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
		"contentSource", cfg.Content.Source,
	)

	providers, cleanup, err := buildProviders(cfg)
	if err != nil {
		logger.Error("failed to set up content providers", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	// Create game hub. Its generator is only ever touched under the hub's
	// own lock; each room derives a private one from it.
	hub := app.NewGameHub(cfg.Game, providers, app.NewRealClock(), rand.New(rand.NewSource(time.Now().UnixNano())), logger)
	defer hub.Close()

	// Create HTTP server
	server := httpTransport.NewServer(cfg, hub, logger)

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}

// buildProviders wires the configured content source. The returned cleanup
// is always safe to call. The memory store gets a generator of its own: it
// serializes access with its own mutex, so sharing one with the hub or the
// rooms would race.
func buildProviders(cfg *config.Config) (app.Providers, func(), error) {
	switch cfg.Content.Source {
	case "sqlite":
		store, err := content.OpenSQLite(cfg.Content.DSN)
		if err != nil {
			return app.Providers{}, func() {}, err
		}
		return app.Providers{
			Questions:  store,
			Words:      store,
			Prompts:    store,
			Categories: store,
		}, func() { store.Close() }, nil
	default:
		store := content.NewMemoryStore(rand.New(rand.NewSource(time.Now().UnixNano())))
		return app.Providers{
			Questions:  store,
			Words:      store,
			Prompts:    store,
			Categories: store,
		}, func() {}, nil
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
