package atlas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logmap/internal/geom"
)

func TestBuiltinAndLookup(t *testing.T) {
	ps := Builtin()
	assert.Equal(t, []string{"Chernarus", "Livonia", "Sakhal"}, Names(ps))

	p, err := Lookup(ps, "Livonia")
	require.NoError(t, err)
	assert.Equal(t, 12800.0, p.Size)
	assert.Equal(t, 12800.0, p.Calibration.MapSize)

	_, err = Lookup(ps, "Namalsk")
	require.ErrorIs(t, err, ErrUnknownMap)
}

func TestLoadProfilesMergesOverBuiltin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "maps.json")
	body := `[
  {"name": "Chernarus", "size": 15360, "image": "chern.png",
   "calibration": {"scale": 1.01, "offset_x": -40, "offset_y": 25, "invert_vertical": true, "north": 2}},
  {"name": "Namalsk", "size": 12800, "image": "/abs/namalsk.png",
   "calibration": {"scale": 1, "north": 1}}
]`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	ps, err := LoadProfiles(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Chernarus", "Livonia", "Sakhal", "Namalsk"}, Names(ps))

	c := ps[0].Calibration
	assert.Equal(t, 1.01, c.Scale)
	assert.Equal(t, 15360.0, c.MapSize)
	assert.Equal(t, geom.AxisZ, c.North)
	assert.True(t, c.InvertVertical)
	assert.Equal(t, filepath.Join(dir, "chern.png"), ps[0].Image)
	assert.Equal(t, "/abs/namalsk.png", ps[3].Image)
}

func TestLoadProfilesDefaultsMissingCalibration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maps.json")
	body := `[
  {"name": "Deer Isle", "size": 16384, "image": "deer.png"},
  {"name": "Esseker", "size": 12800, "calibration": {"scale": 1.02, "north": "z"}}
]`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	ps, err := LoadProfiles(path)
	require.NoError(t, err)

	deer, err := Lookup(ps, "Deer Isle")
	require.NoError(t, err)
	assert.Equal(t, geom.DefaultCalibration(16384), deer.Calibration)

	ess, err := Lookup(ps, "Esseker")
	require.NoError(t, err)
	assert.Equal(t, 1.02, ess.Calibration.Scale)
	assert.Equal(t, geom.AxisZ, ess.Calibration.North)
	assert.Equal(t, 12800.0, ess.Calibration.MapSize)
}

func TestLoadProfilesRejectsBadCalibration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maps.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"X","size":100,"calibration":{"scale":0,"north":1}}]`), 0o644))
	_, err := LoadProfiles(path)
	require.ErrorIs(t, err, geom.ErrZeroScale)

	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"X","size":100,"calibration":{"north":"w"}}]`), 0o644))
	_, err = LoadProfiles(path)
	require.Error(t, err)

	_, err = LoadProfiles(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveThenLoadKeepsCalibration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maps.json")
	c := geom.Calibration{Scale: 0.995, OffsetX: 120, OffsetY: -30, SwapAxes: true, MapSize: 8192, North: geom.AxisY}
	ps, err := Update(Builtin(), "Sakhal", c)
	require.NoError(t, err)
	require.NoError(t, SaveProfiles(path, ps))

	loaded, err := LoadProfiles(path)
	require.NoError(t, err)
	got, err := Lookup(loaded, "Sakhal")
	require.NoError(t, err)
	assert.Equal(t, c, got.Calibration)

	_, err = Update(ps, "Nowhere", c)
	require.ErrorIs(t, err, ErrUnknownMap)
}

func TestLayers(t *testing.T) {
	ls := Layers("Chernarus")
	require.Len(t, ls, 3)
	assert.Equal(t, "Military", ls[0].Name)
	assert.Len(t, ls[0].Points, 4)
	assert.Nil(t, Layers("Sakhal"))
}
