package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLogLevelRoundTrip(t *testing.T) {
	require.Equal(t, "TRACE", LogLevelToString(TraceLevel))
	require.Equal(t, "DEBUG", LogLevelToString(DebugLevel))
	require.Equal(t, "FATAL", LogLevelToString(FatalLevel))
	require.Equal(t, zerolog.WarnLevel, LogLevelToZerolog(WarnLevel))
	require.Equal(t, zerolog.TraceLevel, LogLevelToZerolog(42))
}

func TestNewLoggerRespectsLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "ERROR")
	logger := NewLogger()
	require.Equal(t, zerolog.ErrorLevel, logger.GetLevel())

	var buf bytes.Buffer
	logger = logger.Output(&buf)
	logger.Info().Msg("dropped")
	require.Zero(t, buf.Len())
	logger.Error().Msg("kept")
	require.Contains(t, buf.String(), "kept")
}
