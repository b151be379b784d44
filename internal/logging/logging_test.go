package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWritesJSONLines(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	path := filepath.Join(t.TempDir(), "debug", "logmap.log")
	cleanup, err := Init(path, "debug")
	require.NoError(t, err)

	log.Debug().Str("map", "Chernarus").Int("records", 3).Msg("parsed log")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"map":"Chernarus"`)
	assert.Contains(t, string(data), `"records":3`)
	assert.Contains(t, string(data), `"level":"debug"`)
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	_, err := Init(filepath.Join(t.TempDir(), "x.log"), "loud")
	require.Error(t, err)
}

func TestInitSetsLevel(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	cleanup, err := Init(filepath.Join(t.TempDir(), "x.log"), "warn")
	require.NoError(t, err)
	defer cleanup()
	assert.Equal(t, zerolog.WarnLevel, log.Logger.GetLevel())
}
