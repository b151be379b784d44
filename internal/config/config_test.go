package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAndResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logmap.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"map":"Livonia","log_file":"server.adm","export_size":1024}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Livonia", cfg.Map)

	cfg.Resolve(Flags{LogFile: "other.rpt"})
	assert.Equal(t, "Livonia", cfg.Map)
	assert.Equal(t, "other.rpt", cfg.LogFile)
	assert.Equal(t, 1024, cfg.ExportSize)
	assert.Equal(t, 1000, cfg.GridStep)
	assert.Equal(t, "info", cfg.DebugLevel)
	assert.NotEmpty(t, cfg.DebugLog)
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{Map: "Sakhal", ExportSize: 512, DebugLog: "x.log"})
	assert.Equal(t, "Sakhal", cfg.Map)
	assert.Equal(t, 512, cfg.ExportSize)
	assert.Equal(t, "x.log", cfg.DebugLog)

	cfg = Config{}
	cfg.Resolve(Flags{})
	assert.Equal(t, "Chernarus", cfg.Map)
	assert.Equal(t, 2048, cfg.ExportSize)
	assert.Equal(t, "logmap.png", cfg.ExportPath)
	assert.Equal(t, "maps.json", filepath.Base(cfg.Profiles))
}

func TestProfilesExist(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{Profiles: filepath.Join(dir, "maps.json")}
	assert.False(t, cfg.ProfilesExist())

	require.NoError(t, os.WriteFile(cfg.Profiles, []byte(`[]`), 0o644))
	assert.True(t, cfg.ProfilesExist())

	cfg.Profiles = dir
	assert.False(t, cfg.ProfilesExist())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o644))
	_, err = Load(path)
	require.Error(t, err)
}
