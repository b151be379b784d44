package geom

// Forward maps a raw game coordinate pair to plot space.
// Order is fixed: swap, vertical inversion, then scale and offset per axis.
// Coordinates outside the map are not an error; they land outside Bounds.
func Forward(rawX, rawY float64, c Calibration) Point {
	x, y := rawX, rawY
	if c.SwapAxes {
		x, y = y, x
	}
	if c.InvertVertical {
		y = c.MapSize - y
	}
	return Point{
		X: x*c.Scale + c.OffsetX,
		Y: y*c.Scale + c.OffsetY,
	}
}

// Reverse undoes Forward, turning a plot position back into game coordinates.
func Reverse(plotX, plotY float64, c Calibration) (x, y float64, err error) {
	if c.Scale == 0 {
		return 0, 0, ErrZeroScale
	}
	x = (plotX - c.OffsetX) / c.Scale
	y = (plotY - c.OffsetY) / c.Scale
	if c.InvertVertical {
		y = c.MapSize - y
	}
	if c.SwapAxes {
		x, y = y, x
	}
	return x, y, nil
}

// GridLines returns the plot positions of grid lines drawn every step game
// units across the map. Lines are offset and scaled but not swapped or
// inverted, so they track the image rather than the data.
func GridLines(c Calibration, step float64) (xs, ys []float64) {
	if step <= 0 || c.MapSize <= 0 {
		return nil, nil
	}
	for i := 0.0; i < c.MapSize; i += step {
		xs = append(xs, i*c.Scale+c.OffsetX)
		ys = append(ys, i*c.Scale+c.OffsetY)
	}
	return xs, ys
}

// Extend grows b to include p, seeding it when empty is true.
func Extend(b BBox, p Point, empty bool) BBox {
	if empty {
		return BBox{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
	}
	if p.X < b.MinX {
		b.MinX = p.X
	}
	if p.Y < b.MinY {
		b.MinY = p.Y
	}
	if p.X > b.MaxX {
		b.MaxX = p.X
	}
	if p.Y > b.MaxY {
		b.MaxY = p.Y
	}
	return b
}
