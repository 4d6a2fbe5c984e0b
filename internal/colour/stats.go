package colour

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds contrast statistics for a palette.
type Summary struct {
	Count        int     `json:"count"`
	MinContrast  float64 `json:"min_contrast"`
	MaxContrast  float64 `json:"max_contrast"`
	MeanContrast float64 `json:"mean_contrast"`
	StdDev       float64 `json:"stddev_contrast"`
	// MeanStep is the mean absolute contrast difference between neighbouring colours.
	MeanStep float64 `json:"mean_step"`
}

// Summarise computes contrast statistics over the palette in its current order.
func Summarise(p *Palette) Summary {
	n := p.Len()
	if n == 0 {
		return Summary{}
	}

	values := make([]float64, n)
	for i, c := range p.Colors {
		values[i] = float64(c.Contrast())
	}

	s := Summary{
		Count:        n,
		MinContrast:  floats.Min(values),
		MaxContrast:  floats.Max(values),
		MeanContrast: stat.Mean(values, nil),
	}

	if n > 1 {
		s.StdDev = stat.StdDev(values, nil)

		steps := make([]float64, n-1)
		for i := 1; i < n; i++ {
			steps[i-1] = math.Abs(values[i] - values[i-1])
		}
		s.MeanStep = stat.Mean(steps, nil)
	}

	if math.IsNaN(s.StdDev) {
		s.StdDev = 0
	}

	return s
}
