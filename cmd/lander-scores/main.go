package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lander/internal/game"
	"lander/internal/scores"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg := game.ConfigFromEnv()
	slog.SetDefault(game.NewLogger(cfg.LogLevel))

	addr := os.Getenv("LANDER_SCORES_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           scores.NewHandler(scores.OpenFileStore(cfg.ScoresFile)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		slog.Info("score server listening", "addr", addr, "file", cfg.ScoresFile)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("score server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("score server shutdown", "error", err)
		}
		slog.Info("score server stopped")
	}
}
