package logparse

import (
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"logmap/internal/geom"
)

func TestParseLinePlayerRecord(t *testing.T) {
	rec, ok := ParseLine(`07:15:32 Player "Bob" pos=<100.0, 5.0, 200.0>`)
	require.True(t, ok)
	assert.Equal(t, "Bob", rec.Name)
	assert.Equal(t, Vec3{100, 5, 200}, rec.Raw)
	require.True(t, rec.Time.Valid)
	assert.Equal(t, 7, rec.Time.Hour)
	assert.Equal(t, 15, rec.Time.Minute)
	assert.Equal(t, 32, rec.Time.Second)
	assert.False(t, rec.Time.HasDate())
	assert.Equal(t, "07:15:32", rec.Time.String())
}

func TestParseLineNoCoordinates(t *testing.T) {
	for _, line := range []string{
		`07:15:32 Player "Bob" connected`,
		`pos=<100.0, 5.0>`,
		`pos=<a, b, c>`,
		``,
	} {
		_, ok := ParseLine(line)
		assert.False(t, ok, line)
	}
}

func TestParseLineVariants(t *testing.T) {
	tests := []struct {
		line string
		name string
		raw  Vec3
		ts   string
	}{
		{
			line: `2024-03-09 23:59:59 | Identity "Ann Lee" (id=abc) pos=<-12.5,+3,7.25>`,
			name: "Ann Lee", raw: Vec3{-12.5, 3, 7.25}, ts: "2024-03-09 23:59:59",
		},
		{
			line: `  9:01:02 killed at < 4600 , 339.1 , 10200 >`,
			name: "Unknown", raw: Vec3{4600, 339.1, 10200}, ts: "09:01:02",
		},
		{
			line: `25:00:00 Player "Z" pos=<1, 2, 3>`,
			name: "Z", raw: Vec3{1, 2, 3}, ts: "",
		},
		{
			line: `2024-02-31 10:00:00 Player "Z" pos=<1, 2, 3>`,
			name: "Z", raw: Vec3{1, 2, 3}, ts: "",
		},
		{
			line: `2024-02-29 10:00:00 Player "Z" pos=<1, 2, 3>`,
			name: "Z", raw: Vec3{1, 2, 3}, ts: "2024-02-29 10:00:00",
		},
		{
			line: `Player "late" 12:00:00 pos=<1, 2, 3>`,
			name: "late", raw: Vec3{1, 2, 3}, ts: "",
		},
	}
	for _, tc := range tests {
		rec, ok := ParseLine(tc.line)
		require.True(t, ok, tc.line)
		assert.Equal(t, tc.name, rec.Name)
		assert.Equal(t, tc.raw, rec.Raw)
		assert.Equal(t, tc.ts, rec.Time.String())
		assert.Equal(t, tc.ts != "", rec.Time.Valid)
	}
}

func TestParseKeepsOrderAndSkipsNoise(t *testing.T) {
	log := strings.Join([]string{
		`AdminLog started on 2024-03-09 at 07:00:00`,
		`07:15:32 Player "Bob" pos=<100.0, 5.0, 200.0>`,
		`07:15:40 Player "Bob" disconnected`,
		`07:16:01 Player "Eve" pos=<300.5, 6.0, 400.0>`,
		`#####`,
		`07:17:00 Player "Bob" pos=<110.0, 5.0, 210.0>`,
		``,
	}, "\r\n")

	recs, err := Parse(strings.NewReader(log))
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, []string{"Bob", "Eve", "Bob"}, []string{recs[0].Name, recs[1].Name, recs[2].Name})
	assert.Equal(t, []int{2, 4, 6}, []int{recs[0].Line, recs[1].Line, recs[2].Line})
	assert.Equal(t, `07:17:00 Player "Bob" pos=<110.0, 5.0, 210.0>`, recs[2].Activity)
}

func TestParseCountsMatchingLines(t *testing.T) {
	var b strings.Builder
	const matching, noise = 40, 25
	for i := 0; i < matching; i++ {
		b.WriteString(`Player "p" pos=<1, 2, 3>` + "\n")
		if i < noise {
			b.WriteString("nothing here\n")
		}
	}
	recs := ParseBytes([]byte(b.String()))
	assert.Len(t, recs, matching)
}

func TestParseInvalidBytes(t *testing.T) {
	raw := []byte("Player \"B\xffb\" pos=<1, 2, 3>\nPlayer \"C\" pos=<4, 5, 6>")
	recs := ParseBytes(raw)
	require.Len(t, recs, 2)
	assert.Equal(t, "B�b", recs[0].Name)
	assert.Equal(t, "C", recs[1].Name)
}

func TestParseUTF16WithBOM(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	s, err := enc.String("10:00:00 Player \"Wide\" pos=<7, 8, 9>\n")
	require.NoError(t, err)

	recs := ParseBytes([]byte(s))
	require.Len(t, recs, 1)
	assert.Equal(t, "Wide", recs[0].Name)
	assert.Equal(t, Vec3{7, 8, 9}, recs[0].Raw)
}

func TestParseReaderError(t *testing.T) {
	_, err := Parse(iotest.ErrReader(assert.AnError))
	require.ErrorIs(t, err, assert.AnError)
}

func TestActivityTruncated(t *testing.T) {
	line := `Player "x" pos=<1, 2, 3> ` + strings.Repeat("é", 300)
	rec, ok := ParseLine(line)
	require.True(t, ok)
	assert.Equal(t, ActivityLimit, len([]rune(rec.Activity)))
}

func TestGroundNorthAxis(t *testing.T) {
	rec := Record{Raw: Vec3{1, 2, 3}}
	x, y := rec.Ground(geom.AxisY)
	assert.Equal(t, [2]float64{1, 2}, [2]float64{x, y})
	x, y = rec.Ground(geom.AxisZ)
	assert.Equal(t, [2]float64{1, 3}, [2]float64{x, y})
}

func TestSummary(t *testing.T) {
	recs := []Record{{Name: "b", Line: 1}, {Name: "a", Line: 2}, {Name: "b", Line: 3}}
	sum := Summary(recs)
	require.Len(t, sum, 2)
	assert.Equal(t, "b", sum[0].Name)
	assert.Equal(t, 2, sum[0].Count)
	assert.Equal(t, 3, sum[0].Last.Line)
	assert.Equal(t, 1, sum[1].Count)
}
