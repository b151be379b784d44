package geom

import (
	"encoding/json"
	"errors"
	"fmt"
)

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Valid reports whether the box has a positive extent on both axes.
func (b BBox) Valid() bool {
	return b.MaxX > b.MinX && b.MaxY > b.MinY
}

// Point is a position in plot space (the map image's coordinate frame).
type Point struct {
	X float64
	Y float64
}

// Axis names a raw log column.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("axis(%d)", int(a))
}

// ParseAxis reads "x", "y" or "z".
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("geom: unknown axis %q", s)
}

func (a Axis) MarshalText() ([]byte, error) {
	if a < AxisX || a > AxisZ {
		return nil, fmt.Errorf("geom: invalid axis %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts the column name or its index.
func (a *Axis) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := ParseAxis(s)
		if err != nil {
			return err
		}
		*a = v
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("geom: axis must be a name or index: %w", err)
	}
	*a = Axis(n)
	return nil
}

// Calibration aligns raw game coordinates with a map image.
type Calibration struct {
	Scale          float64 `json:"scale"`
	OffsetX        float64 `json:"offset_x"`
	OffsetY        float64 `json:"offset_y"`
	SwapAxes       bool    `json:"swap_axes"`
	InvertVertical bool    `json:"invert_vertical"`
	MapSize        float64 `json:"map_size"`
	// North is the raw column used as the vertical transform input.
	// Logs disagree on whether that is the 2nd or 3rd value.
	North Axis `json:"north"`
}

// UI ranges for the calibration controls.
const (
	MinScale  = 0.5
	MaxScale  = 1.5
	MaxOffset = 4000.0
)

var ErrZeroScale = errors.New("geom: scale factor is zero")

// DefaultCalibration is the identity transform for a map of the given size.
func DefaultCalibration(mapSize float64) Calibration {
	return Calibration{Scale: 1, MapSize: mapSize, North: AxisY}
}

// Validate checks the parameters a transform depends on.
func (c Calibration) Validate() error {
	if c.Scale == 0 {
		return ErrZeroScale
	}
	if c.MapSize <= 0 {
		return fmt.Errorf("geom: map size must be positive, got %g", c.MapSize)
	}
	if c.North != AxisY && c.North != AxisZ {
		return fmt.Errorf("geom: north axis must be y or z, got %s", c.North)
	}
	return nil
}

// Clamp pins scale and offsets to the UI ranges.
func (c Calibration) Clamp() Calibration {
	c.Scale = clampf(c.Scale, MinScale, MaxScale)
	c.OffsetX = clampf(c.OffsetX, -MaxOffset, MaxOffset)
	c.OffsetY = clampf(c.OffsetY, -MaxOffset, MaxOffset)
	return c
}

// Bounds is the visible plot area of the map image.
func (c Calibration) Bounds() BBox {
	return BBox{MinX: 0, MinY: 0, MaxX: c.MapSize, MaxY: c.MapSize}
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
