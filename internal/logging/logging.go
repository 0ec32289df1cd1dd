// Package logging builds the process logger and the GORM logger from
// configuration.
package logging

import (
	"io"
	"log/slog"
	"strings"

	gormlogger "gorm.io/gorm/logger"
)

// New creates a slog logger writing to w. Unknown levels mean info and
// unknown formats mean text.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("app", "backoffice")
}

// ParseLevel maps debug, info, warn or error to a slog level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// GORM returns the SQL logger: silent unless debug is on.
func GORM(debug bool) gormlogger.Interface {
	level := gormlogger.Silent
	if debug {
		level = gormlogger.Info
	}
	return gormlogger.Default.LogMode(level)
}
