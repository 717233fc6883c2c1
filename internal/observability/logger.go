// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package observability builds the zerolog logger and the Prometheus
// metrics shared by the CLI and its components.
package observability

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LoggingConfig contains logger configuration options.
type LoggingConfig struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string

	// Format is the output format: json or console.
	Format string

	// Output is stdout or stderr. Writer, when set, takes precedence.
	Output string
	Writer io.Writer
}

// DefaultLoggingConfig logs warnings and errors to stderr in console form,
// keeping stdout free for BibTeX.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:  "warn",
		Format: "console",
		Output: "stderr",
	}
}

// NewLogger creates a zerolog logger from cfg.
func NewLogger(cfg LoggingConfig) zerolog.Logger {
	output := cfg.Writer
	if output == nil {
		switch strings.ToLower(cfg.Output) {
		case "stdout":
			output = os.Stdout
		default:
			output = os.Stderr
		}
	}

	if strings.ToLower(cfg.Format) == "console" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.Kitchen,
		}
	}

	return zerolog.New(output).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel converts a level name to zerolog.Level. Unknown names map
// to warn.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}
