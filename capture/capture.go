package capture

import (
	"fmt"
	"image"

	"github.com/vova616/screenshot"
)

// Grab returns a screen capture of the current active monitor.
func Grab() (*image.RGBA, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, fmt.Errorf("screen capture: %w", err)
	}
	return img, nil
}

// GrabSelection returns a capture of the given screen rectangle.
func GrabSelection(area image.Rectangle) (*image.RGBA, error) {
	img, err := screenshot.CaptureRect(area)
	if err != nil {
		return nil, fmt.Errorf("screen capture %v: %w", area, err)
	}
	return img, nil
}
