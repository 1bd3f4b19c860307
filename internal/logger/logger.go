// Package logger собирает slog.Logger для бота.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel переводит строку уровня в slog.Level.
// Допустимые значения: "debug", "info", "warn", "error"; остальное даёт info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New создаёт логгер: JSON в production (GO_ENV=production), текст иначе
func New(level string) *slog.Logger {
	return newLogger(os.Stdout, level, os.Getenv("GO_ENV") == "production")
}

func newLogger(w io.Writer, level string, jsonOutput bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if jsonOutput {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
