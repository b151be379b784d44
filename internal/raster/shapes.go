package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// blend composites c over the pixel at (x, y); out of range is a no-op.
func blend(img *image.NRGBA, x, y int, c color.NRGBA) {
	if !(image.Point{X: x, Y: y}).In(img.Rect) {
		return
	}
	i := img.PixOffset(x, y)
	if c.A == 0xff {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
		return
	}
	a := uint32(c.A)
	da := uint32(img.Pix[i+3])
	outA := a + da*(255-a)/255
	if outA == 0 {
		return
	}
	mix := func(s, d uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*da*(255-a)/255) / outA)
	}
	img.Pix[i] = mix(c.R, img.Pix[i])
	img.Pix[i+1] = mix(c.G, img.Pix[i+1])
	img.Pix[i+2] = mix(c.B, img.Pix[i+2])
	img.Pix[i+3] = uint8(outA)
}

func fillCircle(img *image.NRGBA, cx, cy, r int, c color.NRGBA) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				blend(img, cx+dx, cy+dy, c)
			}
		}
	}
}

func fillDiamond(img *image.NRGBA, cx, cy, r int, c color.NRGBA) {
	for dy := -r; dy <= r; dy++ {
		w := r - abs(dy)
		for dx := -w; dx <= w; dx++ {
			blend(img, cx+dx, cy+dy, c)
		}
	}
}

func strokeRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	for x := r.Min.X; x < r.Max.X; x++ {
		blend(img, x, r.Min.Y, c)
		blend(img, x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		blend(img, r.Min.X, y, c)
		blend(img, r.Max.X-1, y, c)
	}
}

// dottedLine draws an axis-aligned line, 3 pixels on and 3 off.
func dottedLine(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	if x0 == x1 {
		for y := min(y0, y1); y <= max(y0, y1); y++ {
			if (y/3)%2 == 0 {
				blend(img, x0, y, c)
			}
		}
		return
	}
	for x := min(x0, x1); x <= max(x0, x1); x++ {
		if (x/3)%2 == 0 {
			blend(img, x, y0, c)
		}
	}
}

// label writes s with its baseline at (x, y).
func label(img *image.NRGBA, x, y int, s string, c color.NRGBA) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
