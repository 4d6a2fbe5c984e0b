package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/colourfactory/internal/colour"
	"github.com/jmylchreest/colourfactory/internal/generator"
)

// clampValue exposes a generator.Clamp as a single --clamp flag.
type clampValue struct {
	clamp *generator.Clamp
}

var _ pflag.Value = (*clampValue)(nil)

func newClampValue(c *generator.Clamp) *clampValue {
	*c = generator.FullClamp()
	return &clampValue{clamp: c}
}

func (v *clampValue) String() string {
	if v.clamp == nil {
		return generator.FullClamp().String()
	}
	return v.clamp.String()
}

func (v *clampValue) Set(s string) error {
	c, err := generator.ParseClamp(s)
	if err != nil {
		return err
	}
	*v.clamp = c
	return nil
}

func (v *clampValue) Type() string {
	return "minR,minG,minB,maxR,maxG,maxB"
}

// parseRGB parses "r,g,b" with each channel in 0-255.
func parseRGB(s string) (colour.RGB, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return colour.RGB{}, fmt.Errorf("invalid colour %q: expected r,g,b", s)
	}

	var ch [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return colour.RGB{}, fmt.Errorf("invalid colour %q: channels must be between 0 and 255", s)
		}
		ch[i] = uint8(v)
	}

	return colour.RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}
