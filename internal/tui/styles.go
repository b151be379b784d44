package tui

import (
	"github.com/charmbracelet/lipgloss"

	"logmap/internal/marker"
)

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")
	hoverFg   = lipgloss.Color("#FFA500")
	hitFg     = lipgloss.Color("#00FF00")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
	onStyle    = lipgloss.NewStyle().Foreground(hitFg)

	toneStyles = map[tone]lipgloss.Style{
		toneGrid:    lipgloss.NewStyle().Foreground(lipgloss.Color("#374151")),
		toneOutline: lipgloss.NewStyle().Foreground(lipgloss.Color("#4169E1")),
		toneTrack:   lipgloss.NewStyle().Foreground(lipgloss.Color("#9F1239")),
		toneDim:     lipgloss.NewStyle().Foreground(lipgloss.Color("#4C1D1D")),
		toneRecord:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")),
	}
)

func markerStyle(k marker.Kind) lipgloss.Style {
	c := "#F97316"
	switch k {
	case marker.Base:
		c = "#3B82F6"
	case marker.Vehicle:
		c = "#EAB308"
	case marker.Body:
		c = "#9CA3AF"
	case marker.Loot:
		c = "#22C55E"
	case marker.Enemy:
		c = "#DC2626"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Bold(true)
}

func onOff(on bool) string {
	if on {
		return onStyle.Render("on")
	}
	return dimStyle.Render("off")
}
