package capture

import (
	"errors"
	"image"

	"github.com/vova616/screenshot"
)

// ScreenSource captures the primary screen through the screenshot library.
type ScreenSource struct{}

// NewScreenSource returns a Source backed by the desktop screen.
func NewScreenSource() *ScreenSource { return &ScreenSource{} }

// Grab returns a screen capture of the current active monitor.
func (ScreenSource) Grab() (*image.RGBA, error) {
	return screenshot.CaptureScreen()
}

// GrabSelection captures sel clipped to the screen bounds.
func (ScreenSource) GrabSelection(sel image.Rectangle) (*image.RGBA, error) {
	if sel.Empty() {
		return nil, errors.New("capture: empty selection")
	}
	screen, err := screenshot.ScreenRect()
	if err != nil {
		return nil, err
	}
	r := sel.Intersect(screen)
	if r.Empty() {
		return nil, errors.New("capture: selection out of screen bounds")
	}
	return screenshot.CaptureRect(r)
}
