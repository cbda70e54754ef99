package main

import (
	"log/slog"
	"os"

	"lander/internal/desktop"
	"lander/internal/game"
)

func main() {
	cfg := game.ConfigFromEnv()
	slog.SetDefault(game.NewLogger(cfg.LogLevel))

	if err := desktop.RunDesktop(cfg, game.OpenScoreStore(cfg)); err != nil {
		slog.Error("lander stopped", "error", err)
		os.Exit(1)
	}
}
