package capture

import (
	"image"
	"time"
)

// FrameSnapshot carries the latest captured image and metadata. It feeds the
// preview and still capture; analysis receives its own Frame copy.
type FrameSnapshot struct {
	Image      image.Image
	CapturedAt time.Time
	Sequence   uint64
}

// CaptureStats summarises capture loop behaviour for instrumentation.
type CaptureStats struct {
	Captures         uint64
	Skipped          uint64
	Published        uint64
	PublishErrors    uint64
	AvgCapture       time.Duration
	AvgCaptureMicros float64
	LastCapture      time.Time
	LatestFrameAge   time.Duration
	Sequence         uint64
}
