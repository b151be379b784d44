package tui

import (
	"github.com/charmbracelet/lipgloss"

	"logmap/internal/geom"
)

// cellToPlot converts a map cell coordinate back to plot space using the map
// bounds, zoom, and pan.
func (m Model) cellToPlot(cx, cy, w, h int) (geom.Point, bool) {
	b := m.calib.Bounds()
	if !b.Valid() {
		return geom.Point{}, false
	}
	if w <= 1 || h <= 1 {
		return geom.Point{}, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	return geom.Point{
		X: b.MinX + nx*(b.MaxX-b.MinX),
		Y: b.MinY + ny*(b.MaxY-b.MinY),
	}, true
}

// cellToGame runs cellToPlot through the inverse calibration.
func (m Model) cellToGame(cx, cy, w, h int) (x, z float64, ok bool) {
	p, ok := m.cellToPlot(cx, cy, w, h)
	if !ok {
		return 0, 0, false
	}
	x, z, err := geom.Reverse(p.X, p.Y, m.calib)
	if err != nil {
		return 0, 0, false
	}
	return x, z, true
}

// recordPlot is the plot position of record i under the current calibration.
func (m Model) recordPlot(i int) geom.Point {
	x, y := m.records[i].Ground(m.calib.North)
	return geom.Forward(x, y, m.calib)
}

func (m Model) hit(i int) bool {
	return i < len(m.highlight) && m.highlight[i]
}

func (m Model) renderMap(w, h int) string {
	br := newBrailleBuf(w, h)
	b := m.calib.Bounds()

	// map outline
	x0, y0, _ := m.screenXYMicro(b.MinX, b.MinY, w, h)
	x1, y1, _ := m.screenXYMicro(b.MaxX, b.MaxY, w, h)
	br.vline(x0, y0, y1, toneOutline, false)
	br.vline(x1, y0, y1, toneOutline, false)
	br.hline(y0, x0, x1, toneOutline, false)
	br.hline(y1, x0, x1, toneOutline, false)

	if m.showGrid {
		xs, ys := geom.GridLines(m.calib, m.gridStep)
		for _, gx := range xs {
			mx, _, _ := m.screenXYMicro(gx, 0, w, h)
			br.vline(mx, y0, y1, toneGrid, true)
		}
		for _, gy := range ys {
			_, my, _ := m.screenXYMicro(0, gy, w, h)
			br.hline(my, x0, x1, toneGrid, true)
		}
	}

	// player tracks: consecutive records of the same player
	if m.showTracks {
		last := map[string][2]int{}
		for i, r := range m.records {
			p := m.recordPlot(i)
			mx, my, _ := m.screenXYMicro(p.X, p.Y, w, h)
			if prev, ok := last[r.Name]; ok {
				br.drawLineMicro(prev[0], prev[1], mx, my, toneTrack)
			}
			last[r.Name] = [2]int{mx, my}
		}
	}

	searching := m.highlight != nil
	for i := range m.records {
		p := m.recordPlot(i)
		mx, my, _ := m.screenXYMicro(p.X, p.Y, w, h)
		switch {
		case m.hit(i):
			br.putGlyphMicro(mx, my, onStyle.Render("●"))
		case searching:
			br.setPixel(mx, my, toneDim)
		default:
			br.setPixel(mx, my, toneRecord)
		}
	}

	for li, l := range m.layers {
		if !m.layerOn[li] {
			continue
		}
		st := lipgloss.NewStyle().Foreground(lipgloss.Color(l.Color))
		for _, poi := range l.Points {
			p := geom.Forward(poi.X, poi.Z, m.calib)
			mx, my, _ := m.screenXYMicro(p.X, p.Y, w, h)
			br.putGlyphMicro(mx, my, st.Render("◆"))
		}
	}

	for _, mk := range m.store.List() {
		p := geom.Forward(mk.X, mk.Z, m.calib)
		mx, my, _ := m.screenXYMicro(p.X, p.Y, w, h)
		br.putGlyphMicro(mx, my, markerStyle(mk.Kind).Render(string(mk.Kind.Letter())))
	}

	// Hover highlight: draw an orange circle at the hovered record cell
	if m.hovering {
		br.putGlyphMicro(m.hoverMicX, m.hoverMicY, lipgloss.NewStyle().Foreground(hoverFg).Render("◯"))
	}
	return br.render()
}

// screenXYMicro maps a plot position into a 2x4 microgrid per cell for
// braille rendering.
func (m Model) screenXYMicro(px, py float64, w, h int) (int, int, bool) {
	b := m.calib.Bounds()
	if !b.Valid() {
		return 0, 0, false
	}
	nx := (px - b.MinX) / (b.MaxX - b.MinX)
	ny := (py - b.MinY) / (b.MaxY - b.MinY)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	wMic := w * 2
	hMic := h * 4
	sx := int(zx*float64(wMic-1)) + m.offsetX*2
	sy := int((1.0-zy)*float64(hMic-1)) + m.offsetY*4
	return sx, sy, true
}

// screenXY maps a plot position to current screen cell coordinates
// considering zoom and pan.
func (m Model) screenXY(px, py float64, w, h int) (int, int, bool) {
	b := m.calib.Bounds()
	if !b.Valid() {
		return 0, 0, false
	}
	nx := (px - b.MinX) / (b.MaxX - b.MinX)
	ny := (py - b.MinY) / (b.MaxY - b.MinY)
	// Apply zoom around center (0.5, 0.5)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	sx := int(zx*float64(w-1)) + m.offsetX
	sy := int((1.0-zy)*float64(h-1)) + m.offsetY
	return sx, sy, true
}

// nearestRecord finds the record drawn closest to micro position (hx, hy).
func (m Model) nearestRecord(hx, hy, w, h int) (int, int, int, bool) {
	best := 1<<31 - 1
	bi, bx, by := -1, hx, hy
	for i := range m.records {
		p := m.recordPlot(i)
		mx, my, ok := m.screenXYMicro(p.X, p.Y, w, h)
		if !ok {
			continue
		}
		dx := mx - hx
		dy := my - hy
		d := dx*dx + dy*dy
		if d < best {
			best = d
			bi, bx, by = i, mx, my
		}
	}
	return bi, bx, by, bi >= 0
}

// inspectNearest finds the record closest to the viewport center.
func (m Model) inspectNearest() (int, bool) {
	if len(m.records) == 0 {
		return 0, false
	}
	w, h := m.mapW, m.mapH
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	cx, cy := w/2, h/2
	bestD := 1<<31 - 1
	best := -1
	for i := range m.records {
		p := m.recordPlot(i)
		sx, sy, ok := m.screenXY(p.X, p.Y, w, h)
		if !ok {
			continue
		}
		dx := sx - cx
		dy := sy - cy
		d := dx*dx + dy*dy
		if d < bestD {
			bestD = d
			best = i
		}
	}
	return best, best >= 0
}

// extent is the plot-space bounding box of all records.
func (m Model) extent() (geom.BBox, bool) {
	var b geom.BBox
	for i := range m.records {
		b = geom.Extend(b, m.recordPlot(i), i == 0)
	}
	return b, len(m.records) > 0
}
