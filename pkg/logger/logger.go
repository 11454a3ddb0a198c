package logger

import (
	"io"
	"log/slog"
	"os"
)

// Config holds the stdout logger settings.
type Config struct {
	Level slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
}

// New creates a JSON-formatted logger writing to stdout with optional context extractors.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(NewLogHandlerDecorator(stdoutHandler(cfg.Level), extractors...))
}

// NewNope creates a no-op logger that discards all output.
// Packages use it as a default when no logger is injected.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func stdoutHandler(level slog.Level) slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
}
