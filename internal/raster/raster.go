// Package raster draws the log overlay onto the background map image and
// writes it out as PNG or WebP.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"

	"logmap/internal/atlas"
	"logmap/internal/geom"
	"logmap/internal/logparse"
	"logmap/internal/marker"
)

// Scene is everything drawn on top of the background.
type Scene struct {
	Calibration geom.Calibration
	Records     []logparse.Record
	// Highlight is aligned with Records; nil means no search is active.
	Highlight []bool
	Layers    []atlas.Layer
	Markers   []marker.Marker
	ShowGrid  bool
	GridStep  float64
}

var (
	bgColor      = color.NRGBA{0x0e, 0x11, 0x17, 0xff}
	outlineColor = color.NRGBA{65, 105, 225, 0xff}
	gridColor    = color.NRGBA{0xff, 0xff, 0xff, 0x33}
	logColor     = color.NRGBA{0xff, 0x00, 0x00, 0xff}
	dimLogColor  = color.NRGBA{0xff, 0x00, 0x00, 0x4c}
	hitColor     = color.NRGBA{0x00, 0xff, 0x00, 0xff}
	white        = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	black        = color.NRGBA{0x00, 0x00, 0x00, 0xff}
)

// LoadBackground decodes a map image chosen by file extension.
func LoadBackground(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("raster: open %s: %w", path, err)
	}
	defer f.Close()

	var img image.Image
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		img, err = png.Decode(f)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(f)
	case ".webp":
		img, err = webp.Decode(f)
	case ".tga":
		img, err = tga.Decode(f)
	default:
		return nil, fmt.Errorf("raster: unsupported image type %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("raster: decode %s: %w", path, err)
	}
	return img, nil
}

// PlotToPixel maps a plot position onto a size×size canvas. Plot Y grows
// upwards, pixel Y downwards.
func PlotToPixel(p geom.Point, mapSize float64, size int) (int, int) {
	s := float64(size)
	x := p.X / mapSize * s
	y := (1 - p.Y/mapSize) * s
	return int(x), int(y)
}

// Render composes the scene over bg, stretched to size×size. A nil bg gives
// the placeholder: a dark canvas with the map outline.
func Render(bg image.Image, size int, s Scene) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bgColor), image.Point{}, draw.Src)
	if bg != nil {
		draw.CatmullRom.Scale(canvas, canvas.Bounds(), bg, bg.Bounds(), draw.Over, nil)
	} else {
		strokeRect(canvas, canvas.Bounds(), outlineColor)
	}

	c := s.Calibration
	if c.MapSize <= 0 {
		return canvas
	}
	px := func(x, y float64) (int, int) { return PlotToPixel(geom.Point{X: x, Y: y}, c.MapSize, size) }

	if s.ShowGrid {
		xs, ys := geom.GridLines(c, s.GridStep)
		for _, gx := range xs {
			x, _ := px(gx, 0)
			dottedLine(canvas, x, 0, x, size-1, gridColor)
		}
		for _, gy := range ys {
			_, y := px(0, gy)
			dottedLine(canvas, 0, y, size-1, y, gridColor)
		}
	}

	for _, l := range s.Layers {
		col := parseHex(l.Color)
		for _, poi := range l.Points {
			p := geom.Forward(poi.X, poi.Z, c)
			x, y := px(p.X, p.Y)
			fillDiamond(canvas, x, y, 6, black)
			fillDiamond(canvas, x, y, 5, col)
			label(canvas, x+8, y+4, poi.Name, white)
		}
	}

	for _, m := range s.Markers {
		p := geom.Forward(m.X, m.Z, c)
		x, y := px(p.X, p.Y)
		fillCircle(canvas, x, y, 7, black)
		fillCircle(canvas, x, y, 6, kindColor(m.Kind))
		label(canvas, x-3, y+4, string(m.Kind.Letter()), black)
		if m.Label != "" {
			label(canvas, x+9, y+4, m.Label, white)
		}
	}

	searching := s.Highlight != nil
	for i, r := range s.Records {
		gx, gy := r.Ground(c.North)
		p := geom.Forward(gx, gy, c)
		x, y := px(p.X, p.Y)
		hit := searching && i < len(s.Highlight) && s.Highlight[i]
		switch {
		case hit:
			fillCircle(canvas, x, y, 8, white)
			fillCircle(canvas, x, y, 7, hitColor)
		case searching:
			fillCircle(canvas, x, y, 3, dimLogColor)
		default:
			fillCircle(canvas, x, y, 4, white)
			fillCircle(canvas, x, y, 3, logColor)
		}
	}
	return canvas
}

// Save encodes img by extension: .png or .webp.
func Save(path string, img image.Image) error {
	var encode func(io.Writer, image.Image) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		encode = png.Encode
	case ".webp":
		encode = func(w io.Writer, m image.Image) error { return nativewebp.Encode(w, m, nil) }
	default:
		return fmt.Errorf("raster: unsupported output type %q", ext)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("raster: create %s: %w", path, err)
	}
	err = encode(f, img)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("raster: write %s: %w", path, err)
	}
	return nil
}

func kindColor(k marker.Kind) color.NRGBA {
	switch k {
	case marker.Base:
		return color.NRGBA{0x3b, 0x82, 0xf6, 0xff}
	case marker.Vehicle:
		return color.NRGBA{0xea, 0xb3, 0x08, 0xff}
	case marker.Body:
		return color.NRGBA{0x9c, 0xa3, 0xaf, 0xff}
	case marker.Loot:
		return color.NRGBA{0x22, 0xc5, 0x5e, 0xff}
	case marker.Enemy:
		return color.NRGBA{0xdc, 0x26, 0x26, 0xff}
	}
	return color.NRGBA{0xf9, 0x73, 0x16, 0xff}
}

// parseHex reads "#RRGGBB", defaulting to cyan.
func parseHex(s string) color.NRGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{0x00, 0xff, 0xff, 0xff}
	}
	return color.NRGBA{r, g, b, 0xff}
}
