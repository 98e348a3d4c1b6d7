package logging

import (
	"os"
	"time"

	"github.com/go-sif/catalog/internal/util"
	"github.com/rs/zerolog"
)

const (
	// TraceLevel indicates a log message's level of criticality
	TraceLevel = iota
	// DebugLevel indicates a log message's level of criticality
	DebugLevel
	// InfoLevel indicates a log message's level of criticality
	InfoLevel
	// WarnLevel indicates a log message's level of criticality
	WarnLevel
	// ErrorLevel indicates a log message's level of criticality
	ErrorLevel
	// FatalLevel indicates a log message's level of criticality
	FatalLevel
)

var defaultLogger = NewLogger()

// LogLevelToString translates a log level enum to a string representation
func LogLevelToString(level int) string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "TRACE"
	}
}

// LogLevelToZerolog translates a log level enum to the equivalent zerolog.Level
func LogLevelToZerolog(level int) zerolog.Level {
	switch level {
	case DebugLevel:
		return zerolog.DebugLevel
	case InfoLevel:
		return zerolog.InfoLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	case FatalLevel:
		return zerolog.FatalLevel
	default:
		return zerolog.TraceLevel
	}
}

// NewLogger creates a JSON logger writing to stdout. PRETTY=1 switches to human-readable
// output on stderr, and LOG_LEVEL (one of the LogLevelToString names) or DEBUG=1 lowers the level.
func NewLogger() zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.TimestampFieldName = "time"

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("component", "catalog").Logger()
	if util.GetEnvOrDefault("PRETTY", "0") == "1" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	level := InfoLevel
	if util.GetEnvOrDefault("DEBUG", "0") == "1" {
		level = DebugLevel
	}
	if name := util.GetEnvOrDefault("LOG_LEVEL", ""); name != "" {
		for l := TraceLevel; l <= FatalLevel; l++ {
			if LogLevelToString(l) == name {
				level = l
			}
		}
	}
	return logger.Level(LogLevelToZerolog(level))
}

// Logger returns the package-wide logger used when no logger is configured explicitly
func Logger() *zerolog.Logger {
	return &defaultLogger
}
