package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"logmap/internal/atlas"
	"logmap/internal/geom"
	"logmap/internal/logparse"
)

const (
	scaleStep  = 0.005
	offsetStep = 10.0
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		lo := m.layout()
		m.mapW, m.mapH = lo.mapW, lo.mapH
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, lo.contentH-2)
		}
	case exportedMsg:
		if msg.err != nil {
			m.status = "export error: " + msg.err.Error()
		} else {
			m.status = "exported: " + msg.path
		}
		return m, nil
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.draft != nil {
			return m.updateDraft(msg)
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		if m.showRecords {
			switch msg.String() {
			case "esc", "a":
				m.showRecords = false
				return m, nil
			case "enter":
				m.focusSelectedRow()
				m.showRecords = false
				return m, nil
			case "ctrl+c", "q":
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
		if m.inspectPopup != "" && msg.String() == "esc" {
			m.inspectPopup = ""
			return m, nil
		}
		return m.updateKeys(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		i := int(key[0] - '1')
		if i < len(m.layers) {
			m.layerOn[i] = !m.layerOn[i]
			m.status = fmt.Sprintf("%s: %v", m.layers[i].Name, m.layerOn[i])
		}
	case "l":
		// toggle all layers
		all := true
		for _, on := range m.layerOn {
			all = all && on
		}
		for i := range m.layerOn {
			m.layerOn[i] = !all
		}
		m.status = fmt.Sprintf("layers: %v", !all)
	case "g":
		m.showGrid = !m.showGrid
		m.status = fmt.Sprintf("grid: %v", m.showGrid)
	case "t":
		m.showTracks = !m.showTracks
		m.status = fmt.Sprintf("tracks: %v", m.showTracks)
	case "+", "=":
		if m.zoom < 64 {
			m.zoom *= 1.2
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case "-", "_":
		if m.zoom > 0.05 {
			m.zoom /= 1.2
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case "0":
		m.zoom = 1.0
		m.offsetX, m.offsetY = 0, 0
		m.status = "view reset"
	case "f":
		m.fitToRecords()
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
			m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		}
		lo := m.layout()
		m.mapW, m.mapH = lo.mapW, lo.mapH
	case "h":
		m.helpVisible = !m.helpVisible
	case "a":
		m.showRecords = true
		m.refreshRecordsTable()
	case "/":
		m.searching = true
		m.status = "search"
		return m, m.search.Focus()
	case "m":
		if m.mode == modeNavigate {
			m.mode = modeAddMarker
		} else {
			m.mode = modeNavigate
		}
		m.status = "mouse: " + m.mode.String()
	case "c":
		m.store.Clear()
		m.status = "markers cleared"
	case "M":
		next := m.profiles[(m.mapIdx+1)%len(m.profiles)].Name
		m.selectMap(next)
		m.zoom, m.offsetX, m.offsetY = 1.0, 0, 0
		m.status = "map: " + next
	case "s":
		m.calib.SwapAxes = !m.calib.SwapAxes
		m.status = fmt.Sprintf("swap x/z: %v", m.calib.SwapAxes)
	case "v":
		m.calib.InvertVertical = !m.calib.InvertVertical
		m.status = fmt.Sprintf("invert vertical: %v", m.calib.InvertVertical)
	case "n":
		if m.calib.North == geom.AxisY {
			m.calib.North = geom.AxisZ
		} else {
			m.calib.North = geom.AxisY
		}
		m.status = "north column: " + m.calib.North.String()
	case "[", "]":
		d := scaleStep
		if key == "[" {
			d = -d
		}
		m.calib.Scale += d
		m.calib = m.calib.Clamp()
		m.status = fmt.Sprintf("scale: %.3f", m.calib.Scale)
	case "shift+left", "shift+right", "shift+up", "shift+down":
		switch key {
		case "shift+left":
			m.calib.OffsetX -= offsetStep
		case "shift+right":
			m.calib.OffsetX += offsetStep
		case "shift+up":
			m.calib.OffsetY += offsetStep
		case "shift+down":
			m.calib.OffsetY -= offsetStep
		}
		m.calib = m.calib.Clamp()
		m.status = fmt.Sprintf("offset: %.0f / %.0f", m.calib.OffsetX, m.calib.OffsetY)
	case "r":
		m.calib = profileCalibration(m.profile())
		m.status = "calibration reset"
	case "w":
		m.saveCalibration()
	case "e":
		m.status = "exporting " + m.exportPath + "..."
		return m, m.exportCmd()
	case "i":
		if i, ok := m.inspectNearest(); ok {
			m.inspectPopup = m.inspectText(i)
			m.status = "inspect popup"
		} else {
			m.inspectPopup = "no record nearby"
			m.status = m.inspectPopup
		}
	case "enter":
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.loadPath(it.path)
			}
		}
	case "up":
		m.offsetY -= 1
	case "down":
		m.offsetY += 1
	case "left":
		m.offsetX -= 2
	case "right":
		m.offsetX += 2
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.SetValue("")
		m.search.Blur()
		m.searching = false
		m.applySearch()
		m.status = "search cleared"
		return m, nil
	case "enter":
		m.search.Blur()
		m.searching = false
		m.applySearch()
		n := 0
		for _, h := range m.highlight {
			if h {
				n++
			}
		}
		m.status = fmt.Sprintf("search: %d matching records", n)
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applySearch()
	return m, cmd
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	lo := m.layout()
	cx, cy := msg.X-lo.mapX, msg.Y-lo.mapY
	inside := cx >= 0 && cx < lo.mapW && cy >= 0 && cy < lo.mapH
	if !inside || m.draft != nil || m.showRecords {
		m.hovering = false
		m.hoverHasGeo = false
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.zoom < 64 {
			m.zoom *= 1.2
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if m.zoom > 0.05 {
			m.zoom /= 1.2
		}
		return m, nil
	}

	m.hoverCellX, m.hoverCellY = cx, cy
	if x, z, ok := m.cellToGame(cx, cy, lo.mapW, lo.mapH); ok {
		m.hoverHasGeo = true
		m.hoverGameX, m.hoverGameZ = x, z
	} else {
		m.hoverHasGeo = false
	}
	// snap the hover ring to the nearest record using micro coords
	_, bx, by, ok := m.nearestRecord(cx*2, cy*4, lo.mapW, lo.mapH)
	m.hovering = ok
	m.hoverMicX, m.hoverMicY = bx, by

	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && m.mode == modeAddMarker && m.hoverHasGeo {
		m.draft = newMarkerDraft(m.hoverGameX, m.hoverGameZ)
		m.status = "new marker"
		return m, textinput.Blink
	}
	return m, nil
}

// fitToRecords zooms and pans so every record is on screen.
func (m *Model) fitToRecords() {
	ext, ok := m.extent()
	if !ok {
		m.status = "no records to fit"
		return
	}
	b := m.calib.Bounds()
	spanX := (ext.MaxX - ext.MinX) / (b.MaxX - b.MinX)
	spanY := (ext.MaxY - ext.MinY) / (b.MaxY - b.MinY)
	span := max(spanX, spanY, 1.0/64)
	m.zoom = min(64, max(1, 0.9/span))
	m.offsetX, m.offsetY = 0, 0
	lo := m.layout()
	c := geom.Point{X: (ext.MinX + ext.MaxX) / 2, Y: (ext.MinY + ext.MaxY) / 2}
	if sx, sy, ok := m.screenXY(c.X, c.Y, lo.mapW, lo.mapH); ok {
		m.offsetX = lo.mapW/2 - sx
		m.offsetY = lo.mapH/2 - sy
	}
	m.status = fmt.Sprintf("fit %d records: zoom %.2fx", len(m.records), m.zoom)
}

func (m *Model) saveCalibration() {
	if m.profilesPath == "" {
		m.status = "no profiles file configured"
		return
	}
	if err := m.calib.Validate(); err != nil {
		m.status = "calibration error: " + err.Error()
		return
	}
	ps, err := atlas.Update(m.profiles, m.profile().Name, m.calib)
	if err == nil {
		err = atlas.SaveProfiles(m.profilesPath, ps)
	}
	if err != nil {
		m.status = "save error: " + err.Error()
		log.Error().Err(err).Str("path", m.profilesPath).Msg("save calibration")
		return
	}
	m.profiles = ps
	m.status = "calibration saved: " + filepath.Base(m.profilesPath)
	log.Info().Str("map", m.profile().Name).Interface("calibration", m.calib).Msg("calibration saved")
}

func (m *Model) focusSelectedRow() {
	row := m.tbl.SelectedRow()
	if len(row) == 0 {
		return
	}
	for i, r := range m.records {
		if fmt.Sprintf("%d", r.Line) == row[0] {
			m.focusRecord(i)
			m.hovering = false
			m.status = fmt.Sprintf("focused line %d: %s", r.Line, r.Name)
			return
		}
	}
}

func (m Model) inspectText(i int) string {
	r := m.records[i]
	name := filepath.Base(m.selPath)
	if m.selPath == "" {
		name = "<none>"
	}
	gx, gy := r.Ground(m.calib.North)
	p := m.recordPlot(i)
	meta := []string{
		fmt.Sprintf("log: %s", name),
		fmt.Sprintf("player: %s", r.Name),
		fmt.Sprintf("time: %s", r.Time.String()),
		fmt.Sprintf("raw: <%.1f, %.1f, %.1f>", r.Raw[0], r.Raw[1], r.Raw[2]),
		fmt.Sprintf("grid: %.1f / %.1f", gx/1000, gy/1000),
		fmt.Sprintf("plot: %.1f, %.1f", p.X, p.Y),
		fmt.Sprintf("line %d: %s", r.Line, r.Activity),
	}
	if ext, ok := m.extent(); ok {
		meta = append(meta, fmt.Sprintf("extent: [%.0f, %.0f, %.0f, %.0f]", ext.MinX, ext.MinY, ext.MaxX, ext.MaxY))
	}
	meta = append(meta, "players:")
	for _, pc := range topPlayers(logparse.Summary(m.records), 5) {
		meta = append(meta, fmt.Sprintf("  %-16s %d", pc.Name, pc.Count))
	}
	return strings.Join(meta, "\n")
}

func topPlayers(all []logparse.PlayerCount, n int) []logparse.PlayerCount {
	if len(all) <= n {
		return all
	}
	return all[:n]
}
