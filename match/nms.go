package match

import "sort"

// suppress deduplicates overlapping candidates. Candidates are ranked by
// score (ties by the (y, x) contract), then accepted greedily: a candidate
// survives only if its center stays at Chebyshev distance >= min(w, h)/2
// from every already-accepted center. Every candidate shares the template
// dimensions, so the center distance reduces to the anchor distance.
// Accepts at most maxCount candidates.
func suppress(cands []Match, w, h, maxCount int) []Match {
	if len(cands) == 0 {
		return nil
	}
	sorted := make([]Match, len(cands))
	copy(sorted, cands)
	sort.Slice(sorted, func(i, j int) bool { return better(sorted[i], sorted[j]) })

	radius := minInt(w, h) / 2
	kept := make([]Match, 0, minInt(len(sorted), maxCount))
	for _, c := range sorted {
		overlaps := false
		for _, k := range kept {
			dx := absInt(c.X - k.X)
			dy := absInt(c.Y - k.Y)
			if maxInt(dx, dy) < radius {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}
		kept = append(kept, c)
		if len(kept) >= maxCount {
			break
		}
	}
	return kept
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
