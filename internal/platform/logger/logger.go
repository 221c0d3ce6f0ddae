package logger

import (
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
)

// New returns a structured logger for CLI output, backed by a styled
// charmbracelet handler on stderr so the report on stdout stays clean.
// Level should be one of: debug, info, warn, error. Unrecognized values
// default to info.
func New(level string) *slog.Logger {
	lvl, err := charmlog.ParseLevel(level)
	if err != nil {
		lvl = charmlog.InfoLevel
	}

	handler := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Level:           lvl,
		ReportTimestamp: false,
	})
	return slog.New(handler)
}
