package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lo := m.layout()

	// Header
	title := titleStyle.Render(" logmap ─ survival log intel map ")
	info := dimStyle.Render(fmt.Sprintf(" %s  mouse: %s ", m.profile().Name, m.mode))
	if m.searching || m.search.Value() != "" {
		info += " " + m.search.View()
	}
	header := lipgloss.NewStyle().Width(lo.contentW).MaxHeight(headerHeight).Render(title + info)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(lo.sidebarW).Render(m.l.View())
	}

	// Map viewport
	var mapView string
	switch {
	case m.showRecords:
		// Render records table centered in the map area
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(lo.mapW, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(lo.mapH-2, 20))
		box := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Center, lipgloss.Center, box)
	case m.draft != nil:
		mapView = lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Center, lipgloss.Center, m.draft.view())
	case m.inspectPopup != "":
		maxPopupW := max(20, min(56, lo.mapW-2))
		box := boxStyle.MaxWidth(maxPopupW).Render(m.inspectPopup)
		mapView = lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Left, lipgloss.Center, box)
	default:
		// plain map canvas: no border, no background highlight
		mapView = lipgloss.NewStyle().Width(lo.mapW).Height(lo.mapH).Render(m.renderMap(lo.mapW, lo.mapH))
	}

	// Body row
	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	footer := lipgloss.JoinVertical(lipgloss.Left, m.renderCalibration(lo.contentW), m.renderStatus(lo.contentW))
	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(lo.contentW).Height(m.height).Render(ui)
}

// renderCalibration is the first footer line: calibration on the left, the
// game position under the mouse on the right.
func (m Model) renderCalibration(w int) string {
	c := m.calib
	left := dimStyle.Render(fmt.Sprintf(" scale %.3f  off %.0f/%.0f  ", c.Scale, c.OffsetX, c.OffsetY)) +
		dimStyle.Render("swap ") + onOff(c.SwapAxes) +
		dimStyle.Render("  invert ") + onOff(c.InvertVertical) +
		dimStyle.Render("  north "+c.North.String()) +
		dimStyle.Render("  grid ") + onOff(m.showGrid) +
		dimStyle.Render("  tracks ") + onOff(m.showTracks) +
		dimStyle.Render(fmt.Sprintf("  markers %d", len(m.store.List())))
	coords := ""
	if m.hoverHasGeo {
		coords = dimStyle.Render(fmt.Sprintf("  x=%.0f z=%.0f  %.1f / %.1f  ", m.hoverGameX, m.hoverGameZ, m.hoverGameX/1000, m.hoverGameZ/1000))
	}
	spacer := strings.Repeat(" ", max(0, w-lipgloss.Width(left)-lipgloss.Width(coords)))
	return lipgloss.NewStyle().MaxWidth(w).Render(left + spacer + coords)
}

func (m Model) renderStatus(w int) string {
	status := dimStyle.Render(" " + m.status + " ")
	return lipgloss.NewStyle().Width(w).MaxHeight(1).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, status, m.renderHelp()))
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"/ search",
		"m marker",
		"s/v/n axes",
		"[ ] scale",
		"⇧arrows offset",
		"w save",
		"g grid",
		"t tracks",
		"1-9 layers",
		"a records",
		"i inspect",
		"e export",
		"M map",
		"Tab files",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
