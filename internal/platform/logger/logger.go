package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide structured logger. JSON output keeps log
// aggregation simple across environments.
func New(environment string) *slog.Logger {
	level := slog.LevelInfo
	if environment == "local" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})).With("service", "sedprefill", "env", environment)
}
