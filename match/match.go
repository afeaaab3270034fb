// Package match implements normalized cross-correlation template search over
// 8-bit grayscale rasters: integral-image window statistics, a centered-
// template correlation kernel, a row-partitioned parallel sweep, optional
// coarse-to-fine pyramid refinement and non-maximum suppression. NCC is
// invariant to additive and positive-multiplicative pixel transforms, which
// makes it robust against the brightness and contrast drift typical of
// screen captures.
package match

import (
	"fmt"
	"sort"
)

// Match is a template placement: (X, Y) is the top-left anchor in source
// coordinates, Score the NCC value in [-1, 1].
type Match struct {
	X, Y  int
	Score float64
}

// Single-target coarse retention; multi-target uses max(2*maxCount, 16).
const coarseKeepSingle = 4

// MatchBest returns the best placement of tpl inside src with a score of at
// least threshold, or nil when nothing qualifies. Large inputs go through the
// coarse-to-fine pyramid; everything else is a full argmax sweep.
func MatchBest(src, tpl *Gray, threshold float64) (*Match, error) {
	if err := checkInputs(src, tpl, threshold); err != nil {
		return nil, err
	}
	levels := 0
	if usePyramid(src, tpl) {
		levels = pyramidLevels(tpl.W, tpl.H)
	}
	if levels == 0 {
		return bestFlat(src, tpl, threshold)
	}
	cands, err := pyramidSearch(src, tpl, threshold, levels, coarseKeepSingle)
	if err == errCoarseDegenerate {
		return bestFlat(src, tpl, threshold)
	}
	if err != nil || len(cands) == 0 {
		return nil, err
	}
	best := cands[0]
	return &best, nil
}

// MatchAll returns up to maxCount non-overlapping placements scoring at least
// threshold, ordered by descending score (ties by smaller y, then x).
func MatchAll(src, tpl *Gray, threshold float64, maxCount int) ([]Match, error) {
	if err := checkInputs(src, tpl, threshold); err != nil {
		return nil, err
	}
	if maxCount < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxCount, maxCount)
	}
	levels := 0
	if usePyramid(src, tpl) {
		levels = pyramidLevels(tpl.W, tpl.H)
	}
	var cands []Match
	var err error
	if levels == 0 {
		cands, err = flatSearch(src, tpl, threshold)
	} else {
		coarseKeep := 2 * maxCount
		if coarseKeep < 16 {
			coarseKeep = 16
		}
		cands, err = pyramidSearch(src, tpl, threshold, levels, coarseKeep)
		if err == errCoarseDegenerate {
			cands, err = flatSearch(src, tpl, threshold)
		}
	}
	if err != nil || len(cands) == 0 {
		return nil, err
	}
	return suppress(cands, tpl.W, tpl.H, maxCount), nil
}

func checkInputs(src, tpl *Gray, threshold float64) error {
	if threshold < 0 || threshold > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidThreshold, threshold)
	}
	if tpl.W > src.W || tpl.H > src.H {
		return fmt.Errorf("%w: template %dx%d, source %dx%d",
			ErrTemplateLargerThanSource, tpl.W, tpl.H, src.W, src.H)
	}
	return nil
}

// bestFlat is the single-level argmax sweep.
func bestFlat(src, tpl *Gray, threshold float64) (*Match, error) {
	ts, err := newTemplateStats(tpl)
	if err != nil {
		return nil, err
	}
	ig := newIntegralPair(src)
	best, ok := searchBest(src, ig, ts)
	if !ok || best.Score < threshold {
		return nil, nil
	}
	return &best, nil
}

// flatSearch is the single-level candidate sweep: every qualifying anchor,
// ranked.
func flatSearch(src, tpl *Gray, threshold float64) ([]Match, error) {
	ts, err := newTemplateStats(tpl)
	if err != nil {
		return nil, err
	}
	ig := newIntegralPair(src)
	cands := collectAbove(src, ig, ts, threshold)
	sort.Slice(cands, func(i, j int) bool { return better(cands[i], cands[j]) })
	return cands, nil
}

// errCoarseDegenerate is internal: the level-0 template is valid but its
// downsampled form is flat, so the pyramid cannot run.
var errCoarseDegenerate = fmt.Errorf("coarse template degenerate")

// pyramidSearch runs the coarse-to-fine driver: a full sweep at the top
// level with a relaxed threshold, then per-level refinement windows of
// radius 2 around each doubled candidate, then the user threshold at level 0.
func pyramidSearch(src, tpl *Gray, threshold float64, levels, coarseKeep int) ([]Match, error) {
	// Validate the full-resolution template first so a flat template reports
	// ErrDegenerateTemplate rather than the internal coarse fallback.
	if _, err := newTemplateStats(tpl); err != nil {
		return nil, err
	}

	srcPyr := buildPyramid(src, levels)
	defer releasePyramid(srcPyr)
	tplPyr := buildPyramid(tpl, levels)
	defer releasePyramid(tplPyr)

	ts, err := newTemplateStats(tplPyr[levels])
	if err != nil {
		return nil, errCoarseDegenerate
	}
	relaxed := threshold - coarseRelax
	if relaxed < 0 {
		relaxed = 0
	}
	ig := newIntegralPair(srcPyr[levels])
	cands := collectAbove(srcPyr[levels], ig, ts, relaxed)
	if len(cands) == 0 {
		return nil, nil
	}
	sort.Slice(cands, func(i, j int) bool { return better(cands[i], cands[j]) })
	if len(cands) > coarseKeep {
		cands = cands[:coarseKeep]
	}

	for k := levels - 1; k >= 0; k-- {
		ts, err := newTemplateStats(tplPyr[k])
		if err != nil {
			return nil, errCoarseDegenerate
		}
		st := &levelState{src: srcPyr[k], ig: newIntegralPair(srcPyr[k]), ts: ts}
		cands = refineCandidates(cands, st)
		if len(cands) == 0 {
			return nil, nil
		}
		sort.Slice(cands, func(i, j int) bool { return better(cands[i], cands[j]) })
	}

	// User threshold applies only at full resolution.
	kept := cands[:0]
	for _, c := range cands {
		if c.Score >= threshold {
			kept = append(kept, c)
		}
	}
	return kept, nil
}
