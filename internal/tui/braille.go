package tui

import (
	"math"
	"strings"
)

// tone picks the style of a braille cell; higher tones win when layers share
// a cell.
type tone uint8

const (
	toneNone tone = iota
	toneGrid
	toneOutline
	toneTrack
	toneDim
	toneRecord
)

type brailleBuf struct {
	w, h  int       // in cells
	m     [][]uint8 // per-cell 8-bit mask
	t     [][]tone
	glyph map[[2]int]string // pre-styled single-cell overlays
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	t := make([][]tone, h)
	for i := range m {
		m[i] = make([]uint8, w)
		t[i] = make([]tone, w)
	}
	return &brailleBuf{w: w, h: h, m: m, t: t, glyph: map[[2]int]string{}}
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int, tn tone) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.m[cy][cx] |= bit
	if tn > b.t[cy][cx] {
		b.t[cy][cx] = tn
	}
}

// vline draws x = mx from y0 to y1, clipped to the buffer.
func (b *brailleBuf) vline(mx, y0, y1 int, tn tone, dotted bool) {
	if mx < 0 || mx >= b.w*2 {
		return
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := max(0, y0); y <= min(y1, b.h*4-1); y++ {
		if dotted && y%2 == 1 {
			continue
		}
		b.setPixel(mx, y, tn)
	}
}

// hline draws y = my from x0 to x1, clipped to the buffer.
func (b *brailleBuf) hline(my, x0, x1 int, tn tone, dotted bool) {
	if my < 0 || my >= b.h*4 {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	for x := max(0, x0); x <= min(x1, b.w*2-1); x++ {
		if dotted && x%2 == 1 {
			continue
		}
		b.setPixel(x, my, tn)
	}
}

// drawLineMicro draws a line on the microgrid using Bresenham, after clipping
// it to the buffer so far off-map ends cost nothing.
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int, tn tone) {
	x0, y0, x1, y1, ok := clipSegment(x0, y0, x1, y1, b.w*2, b.h*4)
	if !ok {
		return
	}
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0, tn)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clipSegment trims a segment to the rectangle [0,w)x[0,h) (Liang-Barsky).
// ok is false when no part of it is inside.
func clipSegment(x0, y0, x1, y1, w, h int) (int, int, int, int, bool) {
	if w <= 0 || h <= 0 {
		return 0, 0, 0, 0, false
	}
	fx, fy := float64(x0), float64(y0)
	dx, dy := float64(x1)-fx, float64(y1)-fy
	t0, t1 := 0.0, 1.0
	for _, e := range [4][2]float64{
		{-dx, fx},
		{dx, float64(w-1) - fx},
		{-dy, fy},
		{dy, float64(h-1) - fy},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, r)
		}
	}
	at := func(v, d, t float64, hi int) int {
		return min(hi-1, max(0, int(math.Round(v+t*d))))
	}
	return at(fx, dx, t0, w), at(fy, dy, t0, h), at(fx, dx, t1, w), at(fy, dy, t1, h), true
}

// putGlyph replaces a whole cell with s, which must be one cell wide.
func (b *brailleBuf) putGlyph(cx, cy int, s string) {
	if cx < 0 || cy < 0 || cx >= b.w || cy >= b.h {
		return
	}
	b.glyph[[2]int{cx, cy}] = s
}

// putGlyphMicro places a glyph over the cell holding micro-pixel (mx, my).
func (b *brailleBuf) putGlyphMicro(mx, my int, s string) {
	if mx < 0 || my < 0 {
		return
	}
	b.putGlyph(mx/2, my/4, s)
}

// render composes the buffer into styled rows, batching runs of one tone.
func (b *brailleBuf) render() string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb strings.Builder
		var run []rune
		runTone := toneNone
		flush := func() {
			if len(run) == 0 {
				return
			}
			if st, ok := toneStyles[runTone]; ok {
				sb.WriteString(st.Render(string(run)))
			} else {
				sb.WriteString(string(run))
			}
			run = run[:0]
		}
		for x := 0; x < b.w; x++ {
			if g, ok := b.glyph[[2]int{x, y}]; ok {
				flush()
				sb.WriteString(g)
				continue
			}
			mask := b.m[y][x]
			r, tn := ' ', toneNone
			if mask != 0 {
				r, tn = rune(0x2800+int(mask)), b.t[y][x]
			}
			if tn != runTone {
				flush()
				runTone = tn
			}
			run = append(run, r)
		}
		flush()
		out[y] = sb.String()
	}
	return strings.Join(out, "\n")
}
