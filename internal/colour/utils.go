package colour

import (
	"slices"
)

// Contrast calculates an integer luma approximation of a colour:
// (299*r + 587*g + 114*b) / 1000, truncated.
// Returns a value between 0 and 255.
func Contrast(r, g, b int) int {
	return (299*r + 587*g + 114*b) / 1000
}

// SortByContrast orders the palette by ascending contrast.
// Colours with equal contrast keep their generation order.
func SortByContrast(p *Palette) {
	slices.SortStableFunc(p.Colors, func(a, b RGB) int {
		return a.Contrast() - b.Contrast()
	})
}

// IsSortedByContrast reports whether the palette is in ascending contrast order.
func IsSortedByContrast(p *Palette) bool {
	return slices.IsSortedFunc(p.Colors, func(a, b RGB) int {
		return a.Contrast() - b.Contrast()
	})
}
