package analysis

import (
	"errors"
	"time"

	"github.com/soocke/lumacam-go/domain/capture"
)

// ErrInvalidFrame reports a frame without usable luma data.
var ErrInvalidFrame = errors.New("analysis: invalid frame")

// Sample is the brightness measured on one frame.
type Sample struct {
	Luma      float64
	Timestamp time.Time
	Sequence  uint64
}

// LuminanceAnalyzer averages the luma plane of a frame. It holds no state and
// is safe to share.
type LuminanceAnalyzer struct{}

// Analyze returns the mean of every byte in the frame's luma plane buffer.
//
// The mean runs over the whole buffer, row padding included, so a frame whose
// RowStride exceeds Width counts the padding bytes as pixels. This matches the
// reference numbers; do not narrow it to Width*Height without updating them.
func (LuminanceAnalyzer) Analyze(f *capture.Frame) (Sample, error) {
	plane, ok := f.Luma()
	if !ok || len(plane.Data) == 0 {
		return Sample{}, ErrInvalidFrame
	}
	var sum uint64
	for _, v := range plane.Data {
		sum += uint64(v)
	}
	return Sample{
		Luma:      float64(sum) / float64(len(plane.Data)),
		Timestamp: f.Timestamp,
		Sequence:  f.Sequence,
	}, nil
}
