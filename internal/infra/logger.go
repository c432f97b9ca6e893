package infra

import (
	"log/slog"
	"os"
)

// NewLogger builds the process logger from config. Logs go to stderr
// so stdout stays clean for tooling.
func NewLogger(cfg *Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Logging.Level)); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
