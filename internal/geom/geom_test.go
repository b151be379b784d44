package geom

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calibrations() []Calibration {
	return []Calibration{
		DefaultCalibration(15360),
		{Scale: 1.005, OffsetX: -120, OffsetY: 340, MapSize: 15360, North: AxisY},
		{Scale: 0.8, OffsetX: 2000, OffsetY: -2000, SwapAxes: true, MapSize: 12800, North: AxisZ},
		{Scale: 1.2, OffsetX: 10, OffsetY: 10, InvertVertical: true, MapSize: 8192, North: AxisY},
		{Scale: 0.5, OffsetX: -4000, OffsetY: 4000, SwapAxes: true, InvertVertical: true, MapSize: 15360, North: AxisZ},
		{Scale: -1.5, OffsetX: 3.25, OffsetY: -7.75, SwapAxes: true, InvertVertical: true, MapSize: 1},
	}
}

func TestReverseUndoesForward(t *testing.T) {
	pts := [][2]float64{{0, 0}, {4600, 10200}, {-250.5, 16000.125}, {15360, 15360}, {1e-3, -1e-3}}
	for _, c := range calibrations() {
		for _, p := range pts {
			got := Forward(p[0], p[1], c)
			x, y, err := Reverse(got.X, got.Y, c)
			require.NoError(t, err)
			assert.InDelta(t, p[0], x, 1e-9, "x for %+v", c)
			assert.InDelta(t, p[1], y, 1e-9, "y for %+v", c)
		}
	}
}

func TestForwardSwapMatchesSwappedInputs(t *testing.T) {
	c := Calibration{Scale: 1.1, OffsetX: 30, OffsetY: -45, MapSize: 15360}
	swapped := c
	swapped.SwapAxes = true
	assert.Equal(t, Forward(20, 10, c), Forward(10, 20, swapped))

	c.InvertVertical = true
	swapped.InvertVertical = true
	assert.Equal(t, Forward(20, 10, c), Forward(10, 20, swapped))
}

func TestForwardInvertVerticalBoundary(t *testing.T) {
	inv := Calibration{Scale: 0.95, OffsetX: 12, OffsetY: -80, InvertVertical: true, MapSize: 15360}
	plain := inv
	plain.InvertVertical = false

	assert.Equal(t, Forward(500, 15360, plain).Y, Forward(500, 0, inv).Y)
	assert.Equal(t, Forward(500, 0, plain).Y, Forward(500, 15360, inv).Y)
	assert.Equal(t, Forward(500, 0, plain).X, Forward(500, 0, inv).X)
}

func TestForwardOrder(t *testing.T) {
	c := Calibration{Scale: 2, OffsetX: 1, OffsetY: 3, SwapAxes: true, InvertVertical: true, MapSize: 100}
	// swap (10,20)->(20,10), invert y -> 90, scale+offset -> (41, 183)
	assert.Equal(t, Point{X: 41, Y: 183}, Forward(10, 20, c))
}

func TestForwardOutsideMap(t *testing.T) {
	c := DefaultCalibration(1000)
	p := Forward(-50, 2000, c)
	assert.Equal(t, Point{X: -50, Y: 2000}, p)
	assert.False(t, p.X >= c.Bounds().MinX)
}

func TestReverseZeroScale(t *testing.T) {
	c := DefaultCalibration(15360)
	c.Scale = 0
	_, _, err := Reverse(1, 2, c)
	require.ErrorIs(t, err, ErrZeroScale)
	require.ErrorIs(t, c.Validate(), ErrZeroScale)
}

func TestValidate(t *testing.T) {
	require.NoError(t, DefaultCalibration(8192).Validate())

	c := DefaultCalibration(0)
	require.Error(t, c.Validate())

	c = DefaultCalibration(8192)
	c.North = AxisX
	require.Error(t, c.Validate())
}

func TestCalibrationJSONNamesNorthAxis(t *testing.T) {
	c := DefaultCalibration(8192)
	c.North = AxisZ
	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"north":"z"`)

	var back Calibration
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, c, back)

	require.NoError(t, json.Unmarshal([]byte(`{"north":1}`), &back))
	assert.Equal(t, AxisY, back.North)
	require.Error(t, json.Unmarshal([]byte(`{"north":"up"}`), &back))
}

func TestClamp(t *testing.T) {
	c := Calibration{Scale: 3, OffsetX: -9000, OffsetY: 12, MapSize: 10}.Clamp()
	assert.Equal(t, MaxScale, c.Scale)
	assert.Equal(t, -MaxOffset, c.OffsetX)
	assert.Equal(t, 12.0, c.OffsetY)

	c = Calibration{Scale: 0.1, OffsetY: 5000}.Clamp()
	assert.Equal(t, MinScale, c.Scale)
	assert.Equal(t, MaxOffset, c.OffsetY)
}

func TestGridLines(t *testing.T) {
	c := Calibration{Scale: 0.5, OffsetX: 100, OffsetY: -100, MapSize: 3500, SwapAxes: true}
	xs, ys := GridLines(c, 1000)
	assert.Equal(t, []float64{100, 600, 1100, 1600}, xs)
	assert.Equal(t, []float64{-100, 400, 900, 1400}, ys)

	xs, ys = GridLines(c, 0)
	assert.Empty(t, xs)
	assert.Empty(t, ys)
}

func TestExtend(t *testing.T) {
	b := Extend(BBox{}, Point{X: 5, Y: 5}, true)
	assert.False(t, b.Valid())
	b = Extend(b, Point{X: -1, Y: 9}, false)
	b = Extend(b, Point{X: 3, Y: math.Inf(-1)}, false)
	assert.Equal(t, -1.0, b.MinX)
	assert.Equal(t, 5.0, b.MaxX)
	assert.True(t, math.IsInf(b.MinY, -1))
	assert.Equal(t, 9.0, b.MaxY)
}
