package tui

import (
	"fmt"
	"strings"

	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"logmap/internal/marker"
)

// markerDraft is the marker dialog opened by a click in add-marker mode.
type markerDraft struct {
	x, z  float64
	kind  marker.Kind
	input textinput.Model
}

func newMarkerDraft(x, z float64) *markerDraft {
	in := textinput.New()
	in.Placeholder = "label"
	in.Prompt = "label: "
	in.CharLimit = 48
	in.Focus()
	return &markerDraft{x: x, z: z, kind: marker.Kinds[0], input: in}
}

func (d *markerDraft) marker() marker.Marker {
	return marker.Marker{Kind: d.kind, Label: strings.TrimSpace(d.input.Value()), X: d.x, Z: d.z}
}

func (d *markerDraft) view() string {
	mk := d.marker()
	lines := []string{
		titleStyle.Render("Add Marker"),
		fmt.Sprintf("grid: %s", mk.Grid()),
		fmt.Sprintf("type: %s %s", markerStyle(d.kind).Render(string(d.kind)), d.kind.Icon()),
		d.input.View(),
		dimStyle.Render("tab type  enter save  esc cancel"),
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

// updateDraft handles keys while the marker dialog is open.
func (m Model) updateDraft(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.draft = nil
		m.status = "marker cancelled"
		return m, nil
	case "tab":
		m.draft.kind = m.draft.kind.Next()
		return m, nil
	case "enter":
		mk := m.draft.marker()
		if err := m.store.Add(mk); err != nil {
			m.status = "marker error: " + err.Error()
			return m, nil
		}
		log.Info().Str("kind", string(mk.Kind)).Str("label", mk.Label).Float64("x", mk.X).Float64("z", mk.Z).Msg("marker added")
		m.status = fmt.Sprintf("marker %s at %s (%d total)", mk.Kind, mk.Grid(), len(m.store.List()))
		m.draft = nil
		return m, nil
	}
	var cmd tea.Cmd
	m.draft.input, cmd = m.draft.input.Update(msg)
	return m, cmd
}
