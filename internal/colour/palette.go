// Package colour provides the colour model shared by the generator, sorter and encoders.
package colour

import (
	"fmt"
	"image/color"
	"iter"
	"strconv"
)

// RGB represents a colour as three 8-bit channels.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour in the "(r, g, b)" form used by the text listing.
func (rgb RGB) String() string {
	return fmt.Sprintf("(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Key returns the canonical set key: the decimal channel strings concatenated.
// Distinct colours can share a key (1,10,0 and 11,0,0 are both "1100"); reserved
// lists are matched on this key, so it must not be replaced by a packed integer.
func (rgb RGB) Key() string {
	return Key(strconv.Itoa(int(rgb.R)), strconv.Itoa(int(rgb.G)), strconv.Itoa(int(rgb.B)))
}

// Key concatenates raw channel strings into a set key.
func Key(r, g, b string) string {
	return r + g + b
}

// Pack returns the colour packed as 0xRRGGBB.
func (rgb RGB) Pack() uint32 {
	return uint32(rgb.R)<<16 + uint32(rgb.G)<<8 + uint32(rgb.B)
}

// PackedHex returns the packed value in lowercase hex without zero padding,
// so (0,255,0) is "ff00" and (0,0,0) is "0".
func (rgb RGB) PackedHex() string {
	return strconv.FormatUint(uint64(rgb.Pack()), 16)
}

// Hex returns the RGB colour as a padded hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// RGBA returns the colour as an opaque color.RGBA.
func (rgb RGB) RGBA() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// Contrast returns the luminance-like contrast value of the colour.
func (rgb RGB) Contrast() int {
	return Contrast(int(rgb.R), int(rgb.G), int(rgb.B))
}

// Palette is an insertion-ordered sequence of generated colours.
type Palette struct {
	Colors []RGB
}

// NewPalette creates a new Palette with the given colours.
func NewPalette(colors []RGB) *Palette {
	return &Palette{
		Colors: colors,
	}
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.Colors)
}

// Append adds a colour to the end of the palette.
func (p *Palette) Append(c RGB) {
	p.Colors = append(p.Colors, c)
}

// All returns an iterator over all colours in the palette.
func (p *Palette) All() iter.Seq2[int, RGB] {
	return func(yield func(int, RGB) bool) {
		for i, c := range p.Colors {
			if !yield(i, c) {
				return
			}
		}
	}
}
