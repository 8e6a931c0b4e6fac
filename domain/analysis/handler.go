package analysis

import (
	"errors"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/soocke/lumacam-go/domain/capture"
)

// NewSampleLimiter returns a limiter admitting one frame per interval, or nil
// when every frame should be analysed.
func NewSampleLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// LuminanceHandler adapts the analyzer to the Handler contract. Frames the
// limiter rejects are skipped before any computation; invalid frames produce
// no sample. emit runs on the analysis worker and must not block for long.
func LuminanceHandler(an LuminanceAnalyzer, limiter *rate.Limiter, emit func(Sample), logger *slog.Logger) Handler {
	return func(f *capture.Frame) {
		if f == nil {
			return
		}
		if limiter != nil {
			at := f.Timestamp
			if at.IsZero() {
				at = time.Now()
			}
			if !limiter.AllowN(at, 1) {
				return
			}
		}
		s, err := an.Analyze(f)
		if err != nil {
			if logger != nil && errors.Is(err, ErrInvalidFrame) {
				logger.Debug("luminance skipped", "sequence", f.Sequence, "error", err)
			}
			return
		}
		if emit != nil {
			emit(s)
		}
	}
}
