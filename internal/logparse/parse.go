// Package logparse extracts player position reports from server logs.
package logparse

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ActivityLimit caps Record.Activity, in runes.
const ActivityLimit = 150

const unknownName = "Unknown"

var (
	coordPattern = regexp.MustCompile(`<\s*([-+]?\d+(?:\.\d+)?)\s*,\s*([-+]?\d+(?:\.\d+)?)\s*,\s*([-+]?\d+(?:\.\d+)?)\s*>`)
	namePattern  = regexp.MustCompile(`(?:Player|Identity)\s+"([^"]+)"`)
	timePattern  = regexp.MustCompile(`^\s*(?:(\d{4})-(\d{2})-(\d{2})\s+)?(\d{1,2}):(\d{2}):(\d{2})`)
)

// Parse reads a whole log and returns its records in line order. Bytes that
// are not valid text are replaced rather than rejected; the only errors come
// from the reader itself.
func Parse(r io.Reader) ([]Record, error) {
	dec := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	br := bufio.NewReader(dec)
	var out []Record
	n := 0
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			n++
			if rec, ok := ParseLine(line); ok {
				rec.Line = n
				out = append(out, rec)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return out, fmt.Errorf("logparse: read line %d: %w", n+1, err)
		}
	}
	return out, nil
}

// ParseBytes is Parse over an in-memory buffer.
func ParseBytes(b []byte) []Record {
	// bytes.Reader never fails, and the decoder substitutes bad input.
	out, _ := Parse(bytes.NewReader(b))
	return out
}

// ParseLine extracts a record from a single line. ok is false when the line
// carries no coordinate triple.
func ParseLine(line string) (Record, bool) {
	m := coordPattern.FindStringSubmatch(line)
	if m == nil {
		return Record{}, false
	}
	var rec Record
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return Record{}, false
		}
		rec.Raw[i] = v
	}
	rec.Name = unknownName
	if nm := namePattern.FindStringSubmatch(line); nm != nil {
		rec.Name = nm[1]
	}
	rec.Time = parseTimestamp(line)
	rec.Activity = truncate(strings.TrimSpace(line), ActivityLimit)
	return rec, true
}

func parseTimestamp(line string) Timestamp {
	m := timePattern.FindStringSubmatch(line)
	if m == nil {
		return Timestamp{}
	}
	var ts Timestamp
	ts.Hour, _ = strconv.Atoi(m[4])
	ts.Minute, _ = strconv.Atoi(m[5])
	ts.Second, _ = strconv.Atoi(m[6])
	if ts.Hour > 23 || ts.Minute > 59 || ts.Second > 59 {
		return Timestamp{}
	}
	if m[1] != "" {
		ts.Year, _ = strconv.Atoi(m[1])
		ts.Month, _ = strconv.Atoi(m[2])
		ts.Day, _ = strconv.Atoi(m[3])
		d := time.Date(ts.Year, time.Month(ts.Month), ts.Day, 0, 0, 0, 0, time.UTC)
		if d.Year() != ts.Year || int(d.Month()) != ts.Month || d.Day() != ts.Day {
			return Timestamp{}
		}
	}
	ts.Valid = true
	return ts
}

func truncate(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
