// Package imageio normalizes the variant image inputs (file paths, encoded
// bytes) into the grayscale rasters the engine consumes. Decoding supports
// PNG, JPEG, GIF, BMP, TIFF and WebP.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/soocke/pixel-match-go/match"
)

// ErrDecodeFailed reports encoded bytes no registered decoder could handle.
var ErrDecodeFailed = errors.New("imageio: image decode failed")

// Open decodes the image at path into a grayscale raster. EXIF orientation
// from phone-camera JPEGs is applied before conversion.
func Open(path string) (*match.Gray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecodeFailed, path, err)
	}
	return match.FromImage(img), nil
}

// DecodeBytes decodes encoded image bytes into a grayscale raster.
func DecodeBytes(data []byte) (*match.Gray, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	return match.FromImage(img), nil
}

// Size probes the dimensions of the image at path without a full decode.
func Size(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %s: %v", ErrDecodeFailed, path, err)
	}
	return cfg.Width, cfg.Height, nil
}

// SizeBytes probes the dimensions of encoded image bytes.
func SizeBytes(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	return cfg.Width, cfg.Height, nil
}
