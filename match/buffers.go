package match

import "sync"

// Reusable pixel-buffer pool for pyramid levels. Pyramid searches over
// multi-megapixel sources allocate several large grayscale planes per call;
// recycling the backing slices keeps long-running automation loops from
// churning the heap. If a buffer is never recycled the behavior degrades
// gracefully to plain allocation.

var pixPool sync.Pool // stores []uint8 backing slices

// acquirePix returns a slice of exactly n bytes whose backing array may come
// from an earlier search. Contents are undefined; callers overwrite fully.
func acquirePix(n int) []uint8 {
	if v := pixPool.Get(); v != nil {
		buf := v.([]uint8)
		if cap(buf) >= n {
			return buf[:n]
		}
	}
	return make([]uint8, n)
}

// recyclePix returns a buffer to the pool. The caller must not touch the
// slice afterwards.
func recyclePix(p []uint8) {
	if p == nil {
		return
	}
	pixPool.Put(p[:0])
}
