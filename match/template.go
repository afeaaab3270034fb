package match

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// normEpsilon floors the window and template norms. Below it a patch is
// treated as flat and NCC is undefined.
const normEpsilon = 1e-10

// templateStats carries the per-search template precomputation: the mean,
// the mean-centered pixel values, and the L2 norm of the centered vector.
// Because the centered values sum to zero, the correlation kernel can use raw
// source pixels without subtracting the window mean.
type templateStats struct {
	w, h     int
	mean     float64
	centered []float64
	norm     float64
}

func newTemplateStats(tpl *Gray) (*templateStats, error) {
	vals := make([]float64, len(tpl.Pix))
	for i, p := range tpl.Pix {
		vals[i] = float64(p)
	}
	mean := stat.Mean(vals, nil)
	floats.AddConst(-mean, vals)
	norm := math.Sqrt(floats.Dot(vals, vals))
	if norm <= normEpsilon {
		return nil, ErrDegenerateTemplate
	}
	return &templateStats{w: tpl.W, h: tpl.H, mean: mean, centered: vals, norm: norm}, nil
}
