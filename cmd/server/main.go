// Package main is the entry point for the dog adoption API server.
//
// main stays minimal: load config, build the logger, hand both to the
// server package and block until shutdown. All actual behaviour lives in
// the internal packages so it can be tested without a process.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pawhaus/dog-adoption/internal/config"
	"github.com/pawhaus/dog-adoption/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Config failures happen before the structured logger exists —
		// a plain default logger is all we have.
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.Log.Level),
	}))

	// The SQLite file lives in a subdirectory that may not exist yet on a
	// fresh checkout (data/ is gitignored).
	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until SIGINT/SIGTERM.
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// logLevel maps the config string to a slog level, defaulting to Info on
// anything unrecognised rather than failing startup.
func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
