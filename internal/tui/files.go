package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	"github.com/rs/zerolog/log"

	"logmap/internal/logparse"
	"logmap/internal/search"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

// logExts are the file types offered by the explorer.
var logExts = map[string]bool{".adm": true, ".rpt": true, ".log": true, ".txt": true}

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if logExts[ext] {
			items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no log files in current directory"
	}
}

// loadPath parses a log file into the model.
func (m *Model) loadPath(p string) {
	f, err := os.Open(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		log.Warn().Err(err).Str("path", p).Msg("open log")
		return
	}
	defer f.Close()
	recs, err := logparse.Parse(f)
	if err != nil {
		m.status = "load error: " + err.Error()
		log.Warn().Err(err).Str("path", p).Msg("parse log")
		return
	}
	m.selPath = p
	m.setRecords(recs)
	players := len(logparse.Summary(recs))
	m.status = "loaded: " + filepath.Base(p) + fmt.Sprintf("  records=%d players=%d", len(recs), players)
	log.Info().Str("path", p).Int("records", len(recs)).Int("players", players).Msg("loaded log")
}

// setRecords replaces the dataset and refreshes everything derived from it.
func (m *Model) setRecords(recs []logparse.Record) {
	m.records = recs
	m.hovering = false
	m.applySearch()
	if m.showRecords {
		m.refreshRecordsTable()
	}
}

// applySearch recomputes the highlight mask from the search field.
func (m *Model) applySearch() {
	term := strings.TrimSpace(m.search.Value())
	if term == "" {
		m.highlight = nil
		return
	}
	names := make([]string, len(m.records))
	for i, r := range m.records {
		names[i] = r.Name
	}
	m.highlight = search.Mask(names, term)
}
