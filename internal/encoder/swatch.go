package encoder

import (
	"fmt"
	"io"

	"github.com/disintegration/imaging"

	"github.com/jmylchreest/colourfactory/internal/colour"
)

// MaxSwatchScale caps how far the swatch may be enlarged.
const MaxSwatchScale = 64

// WriteSwatch writes the pixel grid enlarged scale times as a PNG, each colour
// becoming a scale x scale block.
func WriteSwatch(w io.Writer, p *colour.Palette, scale int) error {
	if scale < 1 || scale > MaxSwatchScale {
		return fmt.Errorf("swatch scale must be between 1 and %d, got %d", MaxSwatchScale, scale)
	}

	grid := PixelGrid(p)
	size := grid.Bounds().Dx() * scale
	enlarged := imaging.Resize(grid, size, size, imaging.NearestNeighbor)

	return imaging.Encode(w, enlarged, imaging.PNG)
}
