package logparse

import (
	"fmt"

	"logmap/internal/geom"
)

// Vec3 is a coordinate triple exactly as printed in the log.
type Vec3 [3]float64

// Timestamp is an optional wall-clock reading taken from the line prefix.
// Date fields are zero when the line carried a time only.
type Timestamp struct {
	Valid  bool
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

func (t Timestamp) HasDate() bool { return t.Valid && t.Year != 0 }

func (t Timestamp) String() string {
	if !t.Valid {
		return ""
	}
	if t.HasDate() {
		return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second)
	}
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// Record is one position report found in a log.
type Record struct {
	Name     string
	Raw      Vec3
	Time     Timestamp
	Activity string
	Line     int
}

// Ground returns the pair fed to the transform: the first raw value and the
// column chosen as north.
func (r Record) Ground(north geom.Axis) (x, y float64) {
	if north == geom.AxisZ {
		return r.Raw[0], r.Raw[2]
	}
	return r.Raw[0], r.Raw[1]
}

// PlayerCount is a per-player tally.
type PlayerCount struct {
	Name  string
	Count int
	Last  Record
}

// Summary tallies records per player in first-seen order.
func Summary(records []Record) []PlayerCount {
	idx := map[string]int{}
	var out []PlayerCount
	for _, r := range records {
		i, ok := idx[r.Name]
		if !ok {
			i = len(out)
			idx[r.Name] = i
			out = append(out, PlayerCount{Name: r.Name})
		}
		out[i].Count++
		out[i].Last = r
	}
	return out
}
