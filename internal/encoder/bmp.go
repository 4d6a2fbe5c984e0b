package encoder

import (
	"image"
	"image/color"
	"io"

	"golang.org/x/image/bmp"

	"github.com/jmylchreest/colourfactory/internal/colour"
)

// Fill is the colour of grid cells left over after the last palette entry.
var Fill = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Side returns the smallest square side that holds n colours.
func Side(n int) int {
	side := 1
	for side*side < n {
		side++
	}
	return side
}

// PixelGrid lays the palette out on a Side x Side opaque image.
// Colours fill each column from the bottom up, columns left to right, and
// the remaining cells are white.
func PixelGrid(p *colour.Palette) *image.RGBA {
	side := Side(p.Len())
	img := image.NewRGBA(image.Rect(0, 0, side, side))

	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			img.SetRGBA(x, y, Fill)
		}
	}

	for k, c := range p.Colors {
		img.SetRGBA(k/side, side-1-k%side, c.RGBA())
	}

	return img
}

// WriteBMP writes the pixel grid as an uncompressed 24-bit BMP.
func WriteBMP(w io.Writer, p *colour.Palette) error {
	return bmp.Encode(w, PixelGrid(p))
}
