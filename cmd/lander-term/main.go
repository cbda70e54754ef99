package main

import (
	"fmt"
	"log/slog"
	"os"

	"lander/internal/game"
	"lander/internal/term"
)

func main() {
	cfg := game.ConfigFromEnv()

	// The terminal belongs to the game, so logs go to a file or nowhere.
	logger := slog.New(slog.DiscardHandler)
	if path := os.Getenv("LANDER_LOG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lander-term: open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = game.NewLoggerTo(f, cfg.LogLevel)
	}
	slog.SetDefault(logger)

	if err := term.Run(cfg, game.OpenScoreStore(cfg)); err != nil {
		fmt.Fprintf(os.Stderr, "lander-term: %v\n", err)
		os.Exit(1)
	}
}
