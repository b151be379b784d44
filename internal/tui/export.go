package tui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"logmap/internal/atlas"
	"logmap/internal/raster"
)

type exportedMsg struct {
	path string
	err  error
}

// scene snapshots what is currently visible for the raster exporter.
func (m Model) scene() raster.Scene {
	var layers []atlas.Layer
	for i, l := range m.layers {
		if m.layerOn[i] {
			layers = append(layers, l)
		}
	}
	return raster.Scene{
		Calibration: m.calib,
		Records:     m.records,
		Highlight:   m.highlight,
		Layers:      layers,
		Markers:     m.store.List(),
		ShowGrid:    m.showGrid,
		GridStep:    m.gridStep,
	}
}

// backgroundPath resolves the profile image against the image directory.
func backgroundPath(p atlas.Profile, dir string) string {
	if p.Image == "" || filepath.IsAbs(p.Image) || dir == "" {
		return p.Image
	}
	return filepath.Join(dir, p.Image)
}

// Export renders scene over the profile's background image and writes it to
// path. A missing background is replaced by the placeholder canvas.
func Export(p atlas.Profile, imageDir, path string, size int, scene raster.Scene) error {
	bgPath := backgroundPath(p, imageDir)
	bg, err := raster.LoadBackground(bgPath)
	if err != nil {
		log.Warn().Err(err).Str("image", bgPath).Msg("background unavailable, using placeholder")
	}
	img := raster.Render(bg, size, scene)
	if err := raster.Save(path, img); err != nil {
		return err
	}
	log.Info().Str("path", path).Int("size", size).Int("records", len(scene.Records)).Msg("exported map")
	return nil
}

func (m Model) exportCmd() tea.Cmd {
	p, dir, path, size, scene := m.profile(), m.imageDir, m.exportPath, m.exportSize, m.scene()
	return func() tea.Msg {
		return exportedMsg{path: path, err: Export(p, dir, path, size, scene)}
	}
}
