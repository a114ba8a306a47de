// Package logging configures structured logging for log/slog.
//
// Two output formats are supported: colored text via tint (the default,
// meant for development terminals) and JSON (for log collectors).
//
// Environment variables:
//
//	LOG_LEVEL: debug, info, warn, error (default: info)
package logging

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup configures logging at the level given by LOG_LEVEL. When json is
// true the handler emits JSON lines; otherwise colored text via tint.
func Setup(json bool) {
	SetupWithLevel(levelFromEnv(), json)
}

// SetupWithLevel configures logging at an explicit level.
func SetupWithLevel(level slog.Level, json bool) {
	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		})
	}
	slog.SetDefault(slog.New(handler))
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
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
