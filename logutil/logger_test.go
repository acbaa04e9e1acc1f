package logutil_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/andyle182810/catalogproxy/logutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logutil.New(&buf, logutil.FormatJSON, "info")
	logger.Debug().Msg("hidden")
	logger.Info().Str("proxy", "catalog").Msg("visible")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "visible", entry["message"])
	require.Equal(t, "catalog", entry["proxy"])
	require.Equal(t, "info", entry["level"])
	require.Contains(t, entry, "time")
}

func TestNew_Console(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logutil.New(&buf, logutil.FormatConsole, "debug")
	logger.Debug().Str("proxy", "storage").Msg("console line")

	out := buf.String()
	require.Contains(t, out, "console line")
	require.Contains(t, out, "proxy=storage")
	require.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestNew_Level(t *testing.T) {
	t.Parallel()

	logger := logutil.New(&bytes.Buffer{}, logutil.FormatJSON, "error")
	require.Equal(t, zerolog.ErrorLevel, logger.GetLevel())
}
