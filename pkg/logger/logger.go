package logger

import (
	"io"
	"log/slog"
	"os"
)

// Setup configures the global logger based on the environment.
// It returns the logger instance, but also sets it as the default global logger.
func Setup(env string) *slog.Logger {
	return SetupTo(os.Stdout, env)
}

// SetupTo is Setup with an explicit destination.
func SetupTo(w io.Writer, env string) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if env == "production" {
		// JSON for log shippers
		handler = slog.NewJSONHandler(w, opts)
	} else {
		// Test runs read these by eye
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}
