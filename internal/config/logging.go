package config

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger creates the command logger. The level comes from
// STRIKERS_LOG_LEVEL and defaults to info; unknown levels are ignored.
func NewLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(GetEnv(EnvLogLevel, "info")); err == nil {
		logger.SetLevel(level)
	}
	return logger
}
