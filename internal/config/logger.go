package config

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// LogLevelKey names the environment variable holding the log level.
const LogLevelKey = "ASTEROIDRUN_LOG_LEVEL"

// NewLogger builds the structured logger used by the commands. The level is
// read from ASTEROIDRUN_LOG_LEVEL; an unknown level falls back to info and
// is returned as a diagnostic.
func NewLogger(w io.Writer, prefix string) (*log.Logger, error) {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})

	raw := GetEnv(LogLevelKey, "info")
	level, err := log.ParseLevel(raw)
	if err != nil {
		logger.SetLevel(log.InfoLevel)
		return logger, fmt.Errorf("%s=%q: %w", LogLevelKey, raw, err)
	}
	logger.SetLevel(level)
	return logger, nil
}
