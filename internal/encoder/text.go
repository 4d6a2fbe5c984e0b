package encoder

import (
	"bufio"
	"fmt"
	"io"

	"github.com/jmylchreest/colourfactory/internal/colour"
)

// TextHeader is the first line of the text listing.
const TextHeader = "(R, G, B)"

// WriteText lists one colour per line as "(r, g, b) hex", where hex is the
// packed 0xRRGGBB value in lowercase without zero padding.
func WriteText(w io.Writer, p *colour.Palette) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintln(bw, TextHeader); err != nil {
		return err
	}
	for _, c := range p.All() {
		if _, err := fmt.Fprintf(bw, "%s %s\n", c.String(), c.PackedHex()); err != nil {
			return err
		}
	}

	return bw.Flush()
}
