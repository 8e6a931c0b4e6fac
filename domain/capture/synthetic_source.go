package capture

import (
	"errors"
	"image"
	"sync"
)

// SyntheticSource produces uniform grey frames whose brightness ramps by Step
// on every grab and wraps at 255. It stands in for a camera in headless runs
// and tests.
type SyntheticSource struct {
	Width  int
	Height int
	Step   int

	mu    sync.Mutex
	level int
}

// NewSyntheticSource returns a SyntheticSource of the given size starting at black.
func NewSyntheticSource(width, height, step int) *SyntheticSource {
	return &SyntheticSource{Width: width, Height: height, Step: step}
}

// Grab returns the next frame of the ramp.
func (s *SyntheticSource) Grab() (*image.RGBA, error) {
	return s.GrabSelection(image.Rect(0, 0, s.Width, s.Height))
}

// GrabSelection returns the next frame sized to sel, clipped to the source size.
func (s *SyntheticSource) GrabSelection(sel image.Rectangle) (*image.RGBA, error) {
	r := sel.Intersect(image.Rect(0, 0, s.Width, s.Height))
	if r.Empty() {
		return nil, errors.New("capture: synthetic selection empty")
	}
	v := s.next()
	img := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = v, v, v, 0xFF
	}
	return img, nil
}

func (s *SyntheticSource) next() uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := uint8(s.level)
	s.level = (s.level + s.Step) % 256
	return v
}
