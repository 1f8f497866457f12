// Package logger wraps zerolog with env-driven defaults for a short-lived CLI.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the project-wide logging type.
type Logger = zerolog.Logger

// Options configures the root logger.
type Options struct {
	Level  string
	Format string
	Writer io.Writer
}

// FromEnv builds Options from LOG_* environment variables.
func FromEnv() Options {
	return Options{
		Level:  strings.ToLower(os.Getenv("LOG_LEVEL")),
		Format: strings.ToLower(os.Getenv("LOG_FORMAT")),
	}
}

var (
	once sync.Once
	root zerolog.Logger
)

// Init configures zerolog and builds the root logger, safe to call once.
func Init(opt Options) {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339

		var w io.Writer = os.Stderr
		if opt.Writer != nil {
			w = opt.Writer
		}
		if opt.Format != "json" {
			w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		}

		root = zerolog.New(w).Level(parseLevel(opt.Level)).With().Timestamp().Logger()
	})
}

// Get returns the process-wide root logger.
func Get() *Logger {
	Init(FromEnv())
	return &root
}

// Named returns a child logger with a component field.
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}

// parseLevel supports string-only levels; unknown values fall back to info
func parseLevel(s string) zerolog.Level {
	switch strings.TrimSpace(s) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
