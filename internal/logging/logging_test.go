package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":    zerolog.DebugLevel,
		"WARN":     zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"trace":    zerolog.TraceLevel,
		"Disabled": zerolog.Disabled,
		"":         zerolog.InfoLevel,
		"verbose":  zerolog.InfoLevel,
	}

	for name, want := range tests {
		assert.Equal(t, want, ParseLevel(name), name)
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", false)

	log.Info().Msg("hidden")
	log.Warn().Int("fuel", 3).Msg("shown")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, float64(3), entry["fuel"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", true)
	log.Info().Msg("hello")
	log.Debug().Msg("quiet")

	assert.Contains(t, buf.String(), "hello")
	assert.NotContains(t, buf.String(), "quiet")
	assert.NotContains(t, buf.String(), "\x1b[", "buffers are not terminals")
}

func TestIsTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, IsTerminal(&buf))

	f, err := os.CreateTemp(t.TempDir(), "log")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, IsTerminal(f))
}
