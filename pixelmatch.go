// Package pixelmatch locates occurrences of a small template image inside a
// larger source image using normalized cross-correlation, for UI automation
// and screen scraping. Inputs may be file paths, encoded image bytes, or raw
// grayscale rasters; results are integer pixel positions with a confidence
// score in [-1, 1]. The engine itself lives in the match package; this
// package is the convenience surface over it.
package pixelmatch

import (
	"fmt"
	"image"

	"github.com/soocke/pixel-match-go/imageio"
	"github.com/soocke/pixel-match-go/match"
)

// Version of the library.
const Version = "0.3.1"

// Default search parameters.
const (
	DefaultThreshold = 0.8
	DefaultMaxCount  = 10
)

// Errors surfaced by the facade, re-exported so callers need only this
// package for errors.Is checks.
var (
	ErrInvalidDimensions        = match.ErrInvalidDimensions
	ErrTemplateLargerThanSource = match.ErrTemplateLargerThanSource
	ErrDegenerateTemplate       = match.ErrDegenerateTemplate
	ErrInvalidThreshold         = match.ErrInvalidThreshold
	ErrInvalidMaxCount          = match.ErrInvalidMaxCount
	ErrInvalidThreadCount       = match.ErrInvalidThreadCount
	ErrDecodeFailed             = imageio.ErrDecodeFailed
)

// Result is a located template occurrence. (X, Y) is the top-left corner of
// the matched rectangle in source coordinates; Confidence is the NCC score.
type Result struct {
	X, Y       int
	Confidence float64
}

func (r Result) String() string {
	return fmt.Sprintf("Result(x=%d, y=%d, confidence=%.4f)", r.X, r.Y, r.Confidence)
}

// BBox returns the matched rectangle given the template dimensions.
func (r Result) BBox(w, h int) image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+w, r.Y+h)
}

// FindTemplate finds the single best match between the images at the given
// paths. It returns nil when no placement reaches threshold.
func FindTemplate(sourcePath, templatePath string, threshold float64) (*Result, error) {
	src, err := imageio.Open(sourcePath)
	if err != nil {
		return nil, err
	}
	tpl, err := imageio.Open(templatePath)
	if err != nil {
		return nil, err
	}
	return best(src, tpl, threshold)
}

// FindAllTemplates finds up to maxCount non-overlapping matches between the
// images at the given paths, ordered by descending confidence.
func FindAllTemplates(sourcePath, templatePath string, threshold float64, maxCount int) ([]Result, error) {
	src, err := imageio.Open(sourcePath)
	if err != nil {
		return nil, err
	}
	tpl, err := imageio.Open(templatePath)
	if err != nil {
		return nil, err
	}
	return all(src, tpl, threshold, maxCount)
}

// FindTemplateBytes is FindTemplate over encoded image bytes (PNG, JPEG, ...).
func FindTemplateBytes(source, template []byte, threshold float64) (*Result, error) {
	src, err := imageio.DecodeBytes(source)
	if err != nil {
		return nil, err
	}
	tpl, err := imageio.DecodeBytes(template)
	if err != nil {
		return nil, err
	}
	return best(src, tpl, threshold)
}

// FindAllTemplatesBytes is FindAllTemplates over encoded image bytes.
func FindAllTemplatesBytes(source, template []byte, threshold float64, maxCount int) ([]Result, error) {
	src, err := imageio.DecodeBytes(source)
	if err != nil {
		return nil, err
	}
	tpl, err := imageio.DecodeBytes(template)
	if err != nil {
		return nil, err
	}
	return all(src, tpl, threshold, maxCount)
}

// FindTemplateRaw is FindTemplate over raw row-major 8-bit grayscale buffers.
func FindTemplateRaw(srcPix []byte, srcW, srcH int, tplPix []byte, tplW, tplH int, threshold float64) (*Result, error) {
	src, err := match.NewGray(srcPix, srcW, srcH)
	if err != nil {
		return nil, err
	}
	tpl, err := match.NewGray(tplPix, tplW, tplH)
	if err != nil {
		return nil, err
	}
	return best(src, tpl, threshold)
}

// FindAllTemplatesRaw is FindAllTemplates over raw grayscale buffers.
func FindAllTemplatesRaw(srcPix []byte, srcW, srcH int, tplPix []byte, tplW, tplH int, threshold float64, maxCount int) ([]Result, error) {
	src, err := match.NewGray(srcPix, srcW, srcH)
	if err != nil {
		return nil, err
	}
	tpl, err := match.NewGray(tplPix, tplW, tplH)
	if err != nil {
		return nil, err
	}
	return all(src, tpl, threshold, maxCount)
}

// ImageSize returns the dimensions of the image at path without decoding it
// fully.
func ImageSize(path string) (int, int, error) {
	return imageio.Size(path)
}

// ImageSizeBytes returns the dimensions of encoded image bytes.
func ImageSizeBytes(data []byte) (int, int, error) {
	return imageio.SizeBytes(data)
}

// SetThreads fixes the worker count used by searches. Zero selects the
// number of logical cores.
func SetThreads(n int) error {
	return match.SetThreads(n)
}

func best(src, tpl *match.Gray, threshold float64) (*Result, error) {
	m, err := match.MatchBest(src, tpl, threshold)
	if err != nil || m == nil {
		return nil, err
	}
	return &Result{X: m.X, Y: m.Y, Confidence: m.Score}, nil
}

func all(src, tpl *match.Gray, threshold float64, maxCount int) ([]Result, error) {
	ms, err := match.MatchAll(src, tpl, threshold, maxCount)
	if err != nil {
		return nil, err
	}
	out := make([]Result, len(ms))
	for i, m := range ms {
		out[i] = Result{X: m.X, Y: m.Y, Confidence: m.Score}
	}
	return out, nil
}
