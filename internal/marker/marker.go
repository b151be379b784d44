// Package marker holds user-placed map annotations for the current session.
package marker

import (
	"errors"
	"fmt"
	"sync"
)

type Kind string

const (
	Base    Kind = "Base"
	Vehicle Kind = "Vehicle"
	Body    Kind = "Body"
	Loot    Kind = "Loot"
	POI     Kind = "POI"
	Enemy   Kind = "Enemy"
)

// Kinds lists every marker kind in menu order.
var Kinds = []Kind{Base, Vehicle, Body, Loot, POI, Enemy}

var icons = map[Kind]string{
	Base:    "🏠",
	Vehicle: "🚗",
	Body:    "💀",
	Loot:    "🎒",
	POI:     "📍",
	Enemy:   "⚔",
}

// Icon is the display glyph for k, falling back to the POI pin.
func (k Kind) Icon() string {
	if s, ok := icons[k]; ok {
		return s
	}
	return icons[POI]
}

var letters = map[Kind]rune{
	Base:    'H',
	Vehicle: 'V',
	Body:    'X',
	Loot:    'L',
	POI:     'P',
	Enemy:   'E',
}

// Letter is a single-cell stand-in for terminals without emoji width support.
func (k Kind) Letter() rune {
	if r, ok := letters[k]; ok {
		return r
	}
	return '?'
}

// Next cycles through Kinds.
func (k Kind) Next() Kind {
	for i, c := range Kinds {
		if c == k {
			return Kinds[(i+1)%len(Kinds)]
		}
	}
	return Kinds[0]
}

// Marker is a user annotation in game coordinates.
type Marker struct {
	Kind  Kind
	Label string
	X     float64
	Z     float64
}

// Grid is the position in kilometres, as shown on the in-game map.
func (m Marker) Grid() string {
	return fmt.Sprintf("%.1f / %.1f", m.X/1000, m.Z/1000)
}

var ErrEmptyKind = errors.New("marker: kind is required")

// Store keeps markers for the lifetime of a session.
type Store interface {
	Add(Marker) error
	List() []Marker
	Clear()
}

// MemoryStore is a Store that forgets everything when the process exits.
type MemoryStore struct {
	mu      sync.Mutex
	markers []Marker
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Add(m Marker) error {
	if m.Kind == "" {
		return ErrEmptyKind
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markers = append(s.markers, m)
	return nil
}

// List returns markers in insertion order. The slice is a copy.
func (s *MemoryStore) List() []Marker {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Marker, len(s.markers))
	copy(out, s.markers)
	return out
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	s.markers = nil
	s.mu.Unlock()
}
