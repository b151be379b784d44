package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"
)

// refreshRecordsTable rebuilds the table rows from the loaded records. While
// a search is active only matching records are listed.
func (m *Model) refreshRecordsTable() {
	if len(m.records) == 0 {
		// Do not touch table internals here to avoid re-render during SetColumns
		m.showRecords = false
		m.status = "no records loaded"
		return
	}
	cols := []table.Column{
		{Title: "#", Width: 6},
		{Title: "time", Width: 10},
		{Title: "player", Width: 18},
		{Title: "x", Width: 9},
		{Title: "y", Width: 9},
		{Title: "z", Width: 9},
		{Title: "grid", Width: 11},
		{Title: "activity", Width: 40},
	}
	rows := make([]table.Row, 0, len(m.records))
	for i, r := range m.records {
		if m.highlight != nil && !m.hit(i) {
			continue
		}
		gx, gy := r.Ground(m.calib.North)
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", r.Line),
			r.Time.String(),
			r.Name,
			fmt.Sprintf("%.1f", r.Raw[0]),
			fmt.Sprintf("%.1f", r.Raw[1]),
			fmt.Sprintf("%.1f", r.Raw[2]),
			fmt.Sprintf("%.1f / %.1f", gx/1000, gy/1000),
			r.Activity,
		})
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
	m.status = fmt.Sprintf("records: %d shown of %d", len(rows), len(m.records))
}

// focusRecord moves the viewport so record i sits at the map center.
func (m *Model) focusRecord(i int) {
	if i < 0 || i >= len(m.records) {
		return
	}
	lo := m.layout()
	p := m.recordPlot(i)
	sx, sy, ok := m.screenXY(p.X, p.Y, lo.mapW, lo.mapH)
	if !ok {
		return
	}
	m.offsetX += lo.mapW/2 - sx
	m.offsetY += lo.mapH/2 - sy
}
