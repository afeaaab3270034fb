package match

// Coarse-to-fine search parameters. The pyramid engages only when both the
// template and the source are large enough for the downsampled sweep to pay
// for the extra level construction.
const (
	pyramidMinTemplate = 64 // min(w, h) to consider a pyramid at all
	pyramidMinSource   = 256
	pyramidMinCoarse   = 8 // template side must stay at least this at the top
	pyramidMaxLevels   = 3
	refineRadius       = 2
	coarseRelax        = 0.15 // threshold slack at the coarse level
)

func usePyramid(src, tpl *Gray) bool {
	return minInt(tpl.W, tpl.H) >= pyramidMinTemplate && minInt(src.W, src.H) >= pyramidMinSource
}

// pyramidLevels picks the deepest level L such that the template at level L
// keeps min(w>>L, h>>L) >= 8, capped at 3.
func pyramidLevels(w, h int) int {
	l := 0
	for l < pyramidMaxLevels && minInt(w>>(l+1), h>>(l+1)) >= pyramidMinCoarse {
		l++
	}
	return l
}

// downsample halves a raster with 2x2 box averaging, rounding half to even.
// Level dimensions follow max(1, d>>1); edge samples clamp when a dimension
// is already 1.
func downsample(src *Gray) *Gray {
	nw := src.W >> 1
	if nw < 1 {
		nw = 1
	}
	nh := src.H >> 1
	if nh < 1 {
		nh = 1
	}
	out := acquirePix(nw * nh)
	for y := 0; y < nh; y++ {
		r0 := 2 * y
		r1 := r0 + 1
		if r1 > src.H-1 {
			r1 = src.H - 1
		}
		row0 := src.Pix[r0*src.W : r0*src.W+src.W]
		row1 := src.Pix[r1*src.W : r1*src.W+src.W]
		dst := out[y*nw : (y+1)*nw]
		for x := 0; x < nw; x++ {
			c0 := 2 * x
			c1 := c0 + 1
			if c1 > src.W-1 {
				c1 = src.W - 1
			}
			sum := uint32(row0[c0]) + uint32(row0[c1]) + uint32(row1[c0]) + uint32(row1[c1])
			q := sum >> 2
			r := sum & 3
			if r == 3 || (r == 2 && q&1 == 1) {
				q++
			}
			dst[x] = uint8(q)
		}
	}
	return &Gray{W: nw, H: nh, Pix: out}
}

// buildPyramid returns levels[0..n] with levels[0] == src and each successor
// a 2x box-downsample of its predecessor. All levels past 0 use pooled
// buffers; release with releasePyramid when the search completes.
func buildPyramid(src *Gray, levels int) []*Gray {
	pyr := make([]*Gray, levels+1)
	pyr[0] = src
	for k := 1; k <= levels; k++ {
		pyr[k] = downsample(pyr[k-1])
	}
	return pyr
}

func releasePyramid(pyr []*Gray) {
	for _, g := range pyr[1:] {
		recyclePix(g.Pix)
	}
}

// levelState carries the per-level precomputation built lazily during
// refinement.
type levelState struct {
	src *Gray
	ig  *integralPair
	ts  *templateStats
}

// refineCandidates maps coarse candidates at level k+1 down to level k: each
// candidate's position doubles and a window of radius 2 around it is swept,
// keeping that window's best anchor. Duplicate landing positions collapse to
// one candidate.
func refineCandidates(cands []Match, st *levelState) []Match {
	out := cands[:0]
	seen := make(map[int64]bool, len(cands))
	exMax := st.src.W - st.ts.w
	eyMax := st.src.H - st.ts.h
	for _, c := range cands {
		x0 := clampInt(2*c.X-refineRadius, 0, exMax)
		x1 := clampInt(2*c.X+refineRadius, 0, exMax)
		y0 := clampInt(2*c.Y-refineRadius, 0, eyMax)
		y1 := clampInt(2*c.Y+refineRadius, 0, eyMax)
		best, ok := searchRegion(st.src, st.ig, st.ts, x0, y0, x1, y1)
		if !ok {
			continue
		}
		key := int64(best.Y)<<32 | int64(best.X)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, best)
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
