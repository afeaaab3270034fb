package pixelmatch

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// noisePix fills a buffer from an LCG for reproducible fixtures.
func noisePix(n int, seed uint32) []byte {
	pix := make([]byte, n)
	s := seed
	for i := range pix {
		s = s*1664525 + 1013904223
		pix[i] = byte(s >> 24)
	}
	return pix
}

// grayPNG encodes a grayscale buffer as PNG bytes.
func grayPNG(t *testing.T, pix []byte, w, h int) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: pix[y*w+x]})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// subRegion copies a w x h region at (x, y) out of a larger buffer.
func subRegion(pix []byte, stride, x, y, w, h int) []byte {
	out := make([]byte, w*h)
	for ty := 0; ty < h; ty++ {
		copy(out[ty*w:(ty+1)*w], pix[(y+ty)*stride+x:(y+ty)*stride+x+w])
	}
	return out
}

func TestFindTemplatePaths(t *testing.T) {
	dir := t.TempDir()
	srcPix := noisePix(40*30, 1)
	tplPix := subRegion(srcPix, 40, 11, 7, 8, 8)
	srcPath := writeFile(t, dir, "src.png", grayPNG(t, srcPix, 40, 30))
	tplPath := writeFile(t, dir, "tpl.png", grayPNG(t, tplPix, 8, 8))

	got, err := FindTemplate(srcPath, tplPath, DefaultThreshold)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("expected a match")
	}
	if got.X != 11 || got.Y != 7 {
		t.Fatalf("position: got (%d,%d), want (11,7)", got.X, got.Y)
	}
	if got.Confidence < 1-1e-6 {
		t.Fatalf("confidence: got %v, want ~1", got.Confidence)
	}
	if bb := got.BBox(8, 8); bb != image.Rect(11, 7, 19, 15) {
		t.Fatalf("bbox: got %v", bb)
	}
}

func TestFindTemplateBytesAgreesWithRaw(t *testing.T) {
	srcPix := noisePix(40*30, 3)
	tplPix := subRegion(srcPix, 40, 20, 9, 8, 8)

	fromBytes, err := FindTemplateBytes(grayPNG(t, srcPix, 40, 30), grayPNG(t, tplPix, 8, 8), 0.8)
	if err != nil {
		t.Fatal(err)
	}
	fromRaw, err := FindTemplateRaw(srcPix, 40, 30, tplPix, 8, 8, 0.8)
	if err != nil {
		t.Fatal(err)
	}
	if fromBytes == nil || fromRaw == nil {
		t.Fatalf("missing match: bytes=%v raw=%v", fromBytes, fromRaw)
	}
	if *fromBytes != *fromRaw {
		t.Fatalf("bytes/raw disagreement: %+v vs %+v", *fromBytes, *fromRaw)
	}
}

func TestFindAllTemplatesRaw(t *testing.T) {
	// Four identical 16x16 tiles side by side.
	tile := noisePix(16*16, 9)
	src := make([]byte, 64*16)
	for y := 0; y < 16; y++ {
		for i := 0; i < 4; i++ {
			copy(src[y*64+i*16:y*64+i*16+16], tile[y*16:(y+1)*16])
		}
	}
	got, err := FindAllTemplatesRaw(src, 64, 16, tile, 16, 16, 0.9, DefaultMaxCount)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 4 {
		t.Fatalf("results: got %d, want 4: %v", len(got), got)
	}
	for i, r := range got {
		if r.X != i*16 || r.Y != 0 {
			t.Fatalf("result %d: got (%d,%d), want (%d,0)", i, r.X, r.Y, i*16)
		}
	}
}

func TestBestEqualsFirstOfAll(t *testing.T) {
	srcPix := noisePix(48*48, 17)
	tplPix := subRegion(srcPix, 48, 5, 31, 8, 8)
	b, err := FindTemplateRaw(srcPix, 48, 48, tplPix, 8, 8, 0.5)
	if err != nil || b == nil {
		t.Fatalf("best: %v %v", b, err)
	}
	a, err := FindAllTemplatesRaw(srcPix, 48, 48, tplPix, 8, 8, 0.5, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != 1 || a[0] != *b {
		t.Fatalf("disagreement: best %+v, all %+v", *b, a)
	}
}

func TestErrorSurface(t *testing.T) {
	srcPix := noisePix(16*16, 1)

	if _, err := FindTemplateRaw(srcPix, 16, 16, make([]byte, 5), 2, 2, 0.8); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("raw length mismatch: got %v, want ErrInvalidDimensions", err)
	}
	if _, err := FindTemplateRaw(srcPix, 16, 16, make([]byte, 16), 4, 4, 0.8); !errors.Is(err, ErrDegenerateTemplate) {
		t.Errorf("flat template: got %v, want ErrDegenerateTemplate", err)
	}
	if _, err := FindTemplateRaw(srcPix, 16, 16, noisePix(32*32, 2), 32, 32, 0.8); !errors.Is(err, ErrTemplateLargerThanSource) {
		t.Errorf("oversized template: got %v, want ErrTemplateLargerThanSource", err)
	}
	tpl := subRegion(srcPix, 16, 0, 0, 4, 4)
	if _, err := FindTemplateRaw(srcPix, 16, 16, tpl, 4, 4, 1.5); !errors.Is(err, ErrInvalidThreshold) {
		t.Errorf("bad threshold: got %v, want ErrInvalidThreshold", err)
	}
	if _, err := FindAllTemplatesRaw(srcPix, 16, 16, tpl, 4, 4, 0.8, 0); !errors.Is(err, ErrInvalidMaxCount) {
		t.Errorf("bad max count: got %v, want ErrInvalidMaxCount", err)
	}
	if err := SetThreads(-2); !errors.Is(err, ErrInvalidThreadCount) {
		t.Errorf("bad thread count: got %v, want ErrInvalidThreadCount", err)
	}
	if _, err := FindTemplateBytes([]byte("junk"), []byte("junk"), 0.8); !errors.Is(err, ErrDecodeFailed) {
		t.Errorf("garbage bytes: got %v, want ErrDecodeFailed", err)
	}
}

func TestNotFoundIsNil(t *testing.T) {
	srcPix := noisePix(64*64, 101)
	tplPix := noisePix(16*16, 202)
	got, err := FindTemplateRaw(srcPix, 64, 64, tplPix, 16, 16, 0.9)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("uncorrelated: got %+v, want nil", got)
	}
}

func TestImageSize(t *testing.T) {
	dir := t.TempDir()
	data := grayPNG(t, noisePix(12*34, 4), 12, 34)
	path := writeFile(t, dir, "probe.png", data)
	w, h, err := ImageSize(path)
	if err != nil {
		t.Fatal(err)
	}
	if w != 12 || h != 34 {
		t.Fatalf("size: got %dx%d, want 12x34", w, h)
	}
	w, h, err = ImageSizeBytes(data)
	if err != nil {
		t.Fatal(err)
	}
	if w != 12 || h != 34 {
		t.Fatalf("size bytes: got %dx%d, want 12x34", w, h)
	}
}

func TestVersionAndResultString(t *testing.T) {
	if Version == "" {
		t.Fatal("version must be set")
	}
	r := Result{X: 3, Y: 4, Confidence: 0.9876}
	if got := r.String(); got != "Result(x=3, y=4, confidence=0.9876)" {
		t.Fatalf("string: got %q", got)
	}
}
