package match

import "testing"

func TestDownsampleDims(t *testing.T) {
	cases := []struct{ w, h, nw, nh int }{
		{4, 4, 2, 2},
		{5, 5, 2, 2},
		{1, 7, 1, 3},
		{2, 2, 1, 1},
		{1, 1, 1, 1},
	}
	for _, c := range cases {
		g := noiseGray(t, c.w, c.h, 1)
		d := downsample(g)
		if d.W != c.nw || d.H != c.nh {
			t.Errorf("downsample %dx%d: got %dx%d, want %dx%d", c.w, c.h, d.W, d.H, c.nw, c.nh)
		}
	}
}

func TestDownsampleRoundsHalfToEven(t *testing.T) {
	cases := []struct {
		pix  []uint8
		want uint8
	}{
		{[]uint8{1, 1, 1, 1}, 1},
		{[]uint8{1, 1, 0, 0}, 0}, // 0.5 rounds to even 0
		{[]uint8{2, 2, 1, 1}, 2}, // 1.5 rounds to even 2
		{[]uint8{1, 1, 1, 0}, 1}, // 0.75 rounds up
		{[]uint8{1, 0, 0, 0}, 0}, // 0.25 rounds down
		{[]uint8{255, 255, 255, 255}, 255},
	}
	for _, c := range cases {
		g, err := NewGray(append([]uint8(nil), c.pix...), 2, 2)
		if err != nil {
			t.Fatal(err)
		}
		d := downsample(g)
		if d.Pix[0] != c.want {
			t.Errorf("downsample %v: got %d, want %d", c.pix, d.Pix[0], c.want)
		}
	}
}

func TestPyramidLevels(t *testing.T) {
	cases := []struct{ w, h, want int }{
		{80, 80, 3},
		{64, 64, 3},
		{64, 17, 1},
		{16, 16, 1},
		{8, 8, 0},
	}
	for _, c := range cases {
		if got := pyramidLevels(c.w, c.h); got != c.want {
			t.Errorf("pyramidLevels(%d,%d) = %d, want %d", c.w, c.h, got, c.want)
		}
	}
}

func TestUsePyramidTrigger(t *testing.T) {
	big := noiseGray(t, 300, 300, 1)
	smallSrc := noiseGray(t, 200, 300, 1)
	bigTpl := noiseGray(t, 64, 80, 2)
	smallTpl := noiseGray(t, 63, 80, 2)
	if !usePyramid(big, bigTpl) {
		t.Error("large source + large template must engage the pyramid")
	}
	if usePyramid(smallSrc, bigTpl) {
		t.Error("source below 256 must not engage the pyramid")
	}
	if usePyramid(big, smallTpl) {
		t.Error("template below 64 must not engage the pyramid")
	}
}

func TestPyramidMatchFindsPlantedTemplate(t *testing.T) {
	src := noiseGray(t, 320, 320, 77)
	// Anchor divisible by 8 keeps every pyramid level block-aligned, so the
	// coarse sweep sees an exact copy too.
	tpl := cutout(t, src, 96, 40, 80, 80)
	if !usePyramid(src, tpl) {
		t.Fatal("fixture must engage the pyramid")
	}
	got, err := MatchBest(src, tpl, 0.8)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("expected a match")
	}
	if got.X != 96 || got.Y != 40 {
		t.Fatalf("position: got (%d,%d), want (96,40)", got.X, got.Y)
	}
	if got.Score < 1-1e-6 {
		t.Fatalf("score: got %v, want >= 1-1e-6", got.Score)
	}
}

func TestPyramidMatchAllFindsTwoPlants(t *testing.T) {
	tpl := noiseGray(t, 80, 80, 123)
	src := noiseGray(t, 320, 320, 321)
	paste(src, tpl, 208, 152)
	paste(src, tpl, 16, 24)

	got, err := MatchAll(src, tpl, 0.9, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("results: got %d, want 2 (%+v)", len(got), got)
	}
	// Equal scores of 1.0; (y, x) order puts (16,24) first.
	if got[0].X != 16 || got[0].Y != 24 {
		t.Fatalf("first: got (%d,%d), want (16,24)", got[0].X, got[0].Y)
	}
	if got[1].X != 208 || got[1].Y != 152 {
		t.Fatalf("second: got (%d,%d), want (208,152)", got[1].X, got[1].Y)
	}
	for _, m := range got {
		if m.Score < 1-1e-6 {
			t.Fatalf("score: got %v, want ~1", m.Score)
		}
	}
}

func TestPyramidCoarseFlatFallsBack(t *testing.T) {
	// A 2x2 checkerboard averages to flat at the first pyramid level; the
	// driver must fall back to the full-resolution sweep and still match.
	tpl := checkerGray(t, 80, 80)
	src := uniformGray(t, 320, 320, 128)
	paste(src, tpl, 64, 96)

	got, err := MatchBest(src, tpl, 0.9)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("expected a match after fallback")
	}
	if got.X != 64 || got.Y != 96 {
		t.Fatalf("position: got (%d,%d), want (64,96)", got.X, got.Y)
	}
}
