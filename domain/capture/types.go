package capture

import (
	"context"
	"image"
)

// Source grabs still images from the underlying device. It plays the part of
// the platform camera: the capture service polls it at the configured rate.
type Source interface {
	Grab() (*image.RGBA, error)
	GrabSelection(sel image.Rectangle) (*image.RGBA, error)
}

// FrameSink receives converted frames. On success ownership of f passes to
// the sink, which must eventually Release it; on error the caller keeps it.
// Publish may block only when the sink applies a queueing policy and must
// return once ctx is done.
type FrameSink interface {
	Publish(ctx context.Context, f *Frame) error
}

// FrameSource provides read-only access to captured frames.
// LatestFrame returns the freshest snapshot while Running reports activity.
type FrameSource interface {
	LatestFrame() FrameSnapshot
	Running() bool
}
