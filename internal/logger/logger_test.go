package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONToWriter(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("production", "warn", &buf)
	require.NoError(t, err)

	log.Info().Msg("dropped")
	log.Warn().Int64("user_id", 7).Msg("kept")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "kept", line["message"])
	require.Equal(t, "warn", line["level"])
	require.EqualValues(t, 7, line["user_id"])
	require.Equal(t, "minimart-api", line["service"])
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New("production", "loud")
	require.Error(t, err)
}

func TestParseLevel_DefaultsToInfo(t *testing.T) {
	lvl, err := parseLevel("  ")
	require.NoError(t, err)
	require.Equal(t, zerolog.InfoLevel, lvl)
}
