// Package logger configures the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init sets the global level and tags every event with the service name.
// An empty level falls back to LOG_LEVEL, then to info.
func Init(service, level string) {
	InitWriter(os.Stderr, service, level)
}

// InitWriter is Init with an explicit output.
func InitWriter(w io.Writer, service, level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	zerolog.SetGlobalLevel(ParseLevel(level))
	log.Logger = zerolog.New(w).With().Timestamp().Str("service", service).Logger()
}

// ParseLevel maps DEBUG/INFO/WARN/ERROR, in any case, to a zerolog level.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
