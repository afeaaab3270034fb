package match

// integralPair holds summed-area tables over a raster: s accumulates pixel
// values, s2 their squares. Both are (W+1)*(H+1) with a zero top row and left
// column, so any rectangular sum is four lookups. 64-bit sums cannot overflow
// for any practical image (worst case 65025 per pixel).
type integralPair struct {
	s, s2  []uint64
	stride int // W+1
}

// newIntegralPair builds both tables in a single O(W*H) pass using the
// standard recurrence s[x,y] = p + s[x-1,y] + s[x,y-1] - s[x-1,y-1].
func newIntegralPair(img *Gray) *integralPair {
	w, h := img.W, img.H
	stride := w + 1
	p := &integralPair{
		s:      make([]uint64, stride*(h+1)),
		s2:     make([]uint64, stride*(h+1)),
		stride: stride,
	}
	for y := 0; y < h; y++ {
		row := img.Pix[y*w : (y+1)*w]
		above := y * stride
		cur := (y + 1) * stride
		for x, v := range row {
			pv := uint64(v)
			p.s[cur+x+1] = pv + p.s[above+x+1] + p.s[cur+x] - p.s[above+x]
			p.s2[cur+x+1] = pv*pv + p.s2[above+x+1] + p.s2[cur+x] - p.s2[above+x]
		}
	}
	return p
}

// windowSums returns the pixel sum and squared-pixel sum over the rectangle
// [x, y, x+w, y+h) by inclusion-exclusion.
func (p *integralPair) windowSums(x, y, w, h int) (uint64, uint64) {
	i1 := y*p.stride + x
	i2 := y*p.stride + x + w
	i3 := (y+h)*p.stride + x
	i4 := (y+h)*p.stride + x + w
	sum := p.s[i4] - p.s[i2] - p.s[i3] + p.s[i1]
	sumsq := p.s2[i4] - p.s2[i2] - p.s2[i3] + p.s2[i1]
	return sum, sumsq
}
