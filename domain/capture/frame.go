package capture

import (
	"sync/atomic"
	"time"
)

// Format identifies the plane layout of a Frame.
type Format int

const (
	// FormatYUV420 carries a full-resolution luma plane followed by two
	// 2x2-subsampled chroma planes (U, V).
	FormatYUV420 Format = iota + 1
	// FormatGray carries a single luma plane.
	FormatGray
)

func (f Format) String() string {
	switch f {
	case FormatYUV420:
		return "yuv420"
	case FormatGray:
		return "gray"
	default:
		return "unknown"
	}
}

// Plane is one pixel-data region of a frame. RowStride may exceed the
// logical row length; the extra bytes are padding.
type Plane struct {
	Data        []byte
	RowStride   int
	PixelStride int
}

// Frame is a captured image handed to analyzers. The first plane is always
// luma. A frame is owned by exactly one consumer at a time and its buffers
// are reused after Release, so consumers must not keep Plane.Data around.
type Frame struct {
	Width     int
	Height    int
	Format    Format
	Planes    []Plane
	Timestamp time.Time
	Sequence  uint64

	release  func()
	released atomic.Bool
}

// Luma returns the first plane, or false when the frame carries none.
func (f *Frame) Luma() (Plane, bool) {
	if f == nil || len(f.Planes) == 0 {
		return Plane{}, false
	}
	return f.Planes[0], true
}

// Release hands the frame's buffers back to their owner. Safe to call more than once.
func (f *Frame) Release() {
	if f == nil {
		return
	}
	if !f.released.CompareAndSwap(false, true) {
		return
	}
	if f.release != nil {
		f.release()
	}
}

// Released reports whether Release has been called.
func (f *Frame) Released() bool {
	if f == nil {
		return true
	}
	return f.released.Load()
}

// NewGrayFrame wraps data as a single-plane luma frame. The frame does not own
// data; Release only marks it released.
func NewGrayFrame(width, height, stride int, data []byte, ts time.Time) *Frame {
	return &Frame{
		Width:     width,
		Height:    height,
		Format:    FormatGray,
		Planes:    []Plane{{Data: data, RowStride: stride, PixelStride: 1}},
		Timestamp: ts,
	}
}
