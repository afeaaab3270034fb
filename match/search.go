package match

import (
	"fmt"
	"sync"
)

// better reports whether a outranks b: higher score first, ties broken by
// smaller y then smaller x. The tie-break is part of the public contract and
// keeps results deterministic regardless of worker scheduling.
func better(a, b Match) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}

// stripWorkers caps the configured worker count at one strip per row.
func stripWorkers(rows int) int {
	workers := workerCount()
	if workers > rows {
		workers = rows
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// forEachRowStrip partitions rows [0, rows) into contiguous strips, one per
// worker, and runs fn concurrently. Strips are disjoint so workers never
// share output state.
func forEachRowStrip(rows, workers int, fn func(worker, y0, y1 int)) {
	if workers <= 1 {
		fn(0, 0, rows)
		return
	}
	per := (rows + workers - 1) / workers
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		y0 := i * per
		y1 := y0 + per
		if y1 > rows {
			y1 = rows
		}
		if y0 >= y1 {
			break
		}
		wg.Add(1)
		go func(worker, y0, y1 int) {
			defer wg.Done()
			fn(worker, y0, y1)
		}(i, y0, y1)
	}
	wg.Wait()
}

// searchBest sweeps every valid anchor and returns the best-scoring one.
// Workers report their local argmax with coordinates; the final reduction
// walks workers in index order and applies the tie-break explicitly, so the
// outcome never depends on completion order. ok is false when every window
// was flat.
func searchBest(src *Gray, ig *integralPair, ts *templateStats) (Match, bool) {
	ex := src.W - ts.w
	ey := src.H - ts.h
	rows := ey + 1

	workers := stripWorkers(rows)
	locals := make([]Match, workers)
	for i := range locals {
		locals[i] = Match{Score: flatScore}
	}

	forEachRowStrip(rows, workers, func(worker, y0, y1 int) {
		best := Match{Score: flatScore}
		for y := y0; y < y1; y++ {
			for x := 0; x <= ex; x++ {
				score := scoreAt(src, ig, ts, x, y)
				if score == flatScore {
					continue
				}
				c := Match{X: x, Y: y, Score: score}
				if best.Score == flatScore || better(c, best) {
					best = c
				}
			}
		}
		locals[worker] = best
	})

	best := Match{Score: flatScore}
	for _, c := range locals {
		if c.Score == flatScore {
			continue
		}
		if best.Score == flatScore || better(c, best) {
			best = c
		}
	}
	return best, best.Score != flatScore
}

// collectAbove sweeps every valid anchor and returns all candidates scoring
// at least minScore. Per-worker slices are concatenated in worker order, so
// the result is in ascending (y, x) order and deterministic.
func collectAbove(src *Gray, ig *integralPair, ts *templateStats, minScore float64) []Match {
	ex := src.W - ts.w
	ey := src.H - ts.h
	rows := ey + 1

	workers := stripWorkers(rows)
	parts := make([][]Match, workers)

	forEachRowStrip(rows, workers, func(worker, y0, y1 int) {
		var out []Match
		for y := y0; y < y1; y++ {
			for x := 0; x <= ex; x++ {
				score := scoreAt(src, ig, ts, x, y)
				if score == flatScore || score < minScore {
					continue
				}
				out = append(out, Match{X: x, Y: y, Score: score})
			}
		}
		parts[worker] = out
	})

	var all []Match
	for _, p := range parts {
		all = append(all, p...)
	}
	return all
}

// searchRegion evaluates the anchors in the inclusive rectangle
// [x0, x1] x [y0, y1] serially. Used for the small pyramid refinement
// windows, where goroutine fan-out costs more than it saves.
func searchRegion(src *Gray, ig *integralPair, ts *templateStats, x0, y0, x1, y1 int) (Match, bool) {
	best := Match{Score: flatScore}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			score := scoreAt(src, ig, ts, x, y)
			if score == flatScore {
				continue
			}
			c := Match{X: x, Y: y, Score: score}
			if best.Score == flatScore || better(c, best) {
				best = c
			}
		}
	}
	return best, best.Score != flatScore
}

// ScoreMap evaluates the NCC score at every valid anchor and returns the
// dense map in row-major order, along with its width and height
// (W-w+1 by H-h+1). Flat windows hold -Inf.
func ScoreMap(src, tpl *Gray) ([]float64, int, int, error) {
	if tpl.W > src.W || tpl.H > src.H {
		return nil, 0, 0, fmt.Errorf("%w: template %dx%d, source %dx%d",
			ErrTemplateLargerThanSource, tpl.W, tpl.H, src.W, src.H)
	}
	ts, err := newTemplateStats(tpl)
	if err != nil {
		return nil, 0, 0, err
	}
	ig := newIntegralPair(src)
	mw := src.W - tpl.W + 1
	mh := src.H - tpl.H + 1
	scores := make([]float64, mw*mh)

	forEachRowStrip(mh, stripWorkers(mh), func(_, y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := scores[y*mw : (y+1)*mw]
			for x := 0; x < mw; x++ {
				row[x] = scoreAt(src, ig, ts, x, y)
			}
		}
	})
	return scores, mw, mh, nil
}
