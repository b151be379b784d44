package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"logmap/internal/atlas"
	"logmap/internal/geom"
	"logmap/internal/logparse"
	"logmap/internal/marker"
)

type clickMode int

const (
	modeNavigate clickMode = iota
	modeAddMarker
)

func (c clickMode) String() string {
	if c == modeAddMarker {
		return "add marker"
	}
	return "navigate"
}

// Options configures a new Model.
type Options struct {
	Profiles     []atlas.Profile
	Map          string
	LogPath      string
	ProfilesPath string
	ImageDir     string
	ExportPath   string
	ExportSize   int
	GridStep     float64
	Store        marker.Store
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Map and calibration
	profiles     []atlas.Profile
	mapIdx       int
	calib        geom.Calibration
	profilesPath string
	imageDir     string

	// Data
	records   []logparse.Record
	highlight []bool
	layers    []atlas.Layer
	layerOn   []bool
	store     marker.Store

	showGrid   bool
	showTracks bool
	gridStep   float64
	mode       clickMode

	// search
	search    textinput.Model
	searching bool

	// last rendered map size (for inspect)
	mapW int
	mapH int

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverGameX  float64
	hoverGameZ  float64

	// records table
	showRecords bool
	tbl         table.Model

	// marker dialog
	draft *markerDraft

	exportPath string
	exportSize int
}

func New(opts Options) Model {
	m := Model{
		showSidebar:  false,
		helpVisible:  true,
		zoom:         1.0,
		status:       "logmap ready",
		profiles:     opts.Profiles,
		profilesPath: opts.ProfilesPath,
		imageDir:     opts.ImageDir,
		store:        opts.Store,
		showGrid:     true,
		gridStep:     opts.GridStep,
		exportPath:   opts.ExportPath,
		exportSize:   opts.ExportSize,
	}
	if len(m.profiles) == 0 {
		m.profiles = atlas.Builtin()
	}
	if m.store == nil {
		m.store = marker.NewMemoryStore()
	}
	if m.gridStep <= 0 {
		m.gridStep = 1000
	}
	if m.exportPath == "" {
		m.exportPath = "logmap.png"
	}
	if m.exportSize <= 0 {
		m.exportSize = 2048
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Logs"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// search input
	m.search = textinput.New()
	m.search.Placeholder = "player name"
	m.search.Prompt = "search: "
	m.search.CharLimit = 64
	// records table setup (columns are fixed, rows follow the loaded log)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.selectMap(opts.Map)
	m.refreshDir()
	if opts.LogPath != "" {
		m.loadPath(opts.LogPath)
	}
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// selectMap switches to the named profile, falling back to the first one.
func (m *Model) selectMap(name string) {
	m.mapIdx = 0
	for i, p := range m.profiles {
		if p.Name == name {
			m.mapIdx = i
			break
		}
	}
	p := m.profile()
	m.calib = profileCalibration(p)
	m.layers = atlas.Layers(p.Name)
	m.layerOn = make([]bool, len(m.layers))
	for i := range m.layerOn {
		m.layerOn[i] = true
	}
}

func (m Model) profile() atlas.Profile {
	return m.profiles[m.mapIdx]
}

// profileCalibration is the stored calibration of p with its map size filled.
func profileCalibration(p atlas.Profile) geom.Calibration {
	c := p.Calibration
	if c.MapSize <= 0 {
		c.MapSize = p.Size
	}
	return c
}
