package lz4mt

import "log/slog"

// Global logger for all frame codec diagnostics.
var log = slog.Default()

// SetLogger configures the global logger.
func SetLogger(l *slog.Logger) {
	log = l
}
