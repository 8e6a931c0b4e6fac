package capture

import (
	"context"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soocke/lumacam-go/config"
)

const captureStatsLogInterval = 5 * time.Second

// CaptureService acquires images from a Source, keeps the latest one for
// preview and still capture, and publishes a converted Frame for analysis
// on every iteration. Use NewCaptureService to construct an instance.
type CaptureService interface {
	Start()
	Stop()
	LatestFrame() FrameSnapshot
	Running() bool
	SetSink(FrameSink)
	Stats() CaptureStats
}

type captureService struct {
	src    Source
	cfg    *config.Config
	logger *slog.Logger

	mu     sync.Mutex
	selFn  func() *image.Rectangle // user selection rectangle (optional)
	sink   FrameSink
	cancel context.CancelFunc
	done   chan struct{}

	running       atomic.Bool
	latest        atomic.Pointer[FrameSnapshot]
	captures      atomic.Uint64
	skipped       atomic.Uint64
	published     atomic.Uint64
	publishErrors atomic.Uint64
	captureNanos  atomic.Uint64
	sequence      atomic.Uint64
}

func newCaptureService(logger *slog.Logger, src Source, cfg *config.Config, selectionFn func() *image.Rectangle) *captureService {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &captureService{src: src, cfg: cfg, selFn: selectionFn, logger: logger}
}

// NewCaptureService constructs a capture service polling src at cfg.FrameRate.
func NewCaptureService(logger *slog.Logger, src Source, cfg *config.Config, selectionFn func() *image.Rectangle) CaptureService {
	return newCaptureService(logger, src, cfg, selectionFn)
}

// SetSink attaches the frame consumer. Passing nil detaches it; frames are
// then captured for preview only.
func (s *captureService) SetSink(sink FrameSink) {
	s.mu.Lock()
	s.sink = sink
	s.mu.Unlock()
}

func (s *captureService) LatestFrame() FrameSnapshot {
	snap := s.latest.Load()
	if snap == nil {
		return FrameSnapshot{}
	}
	return *snap
}

func (s *captureService) Running() bool { return s.running.Load() }

func (s *captureService) Stats() CaptureStats {
	captures := s.captures.Load()
	skipped := s.skipped.Load()
	total := s.captureNanos.Load()
	var avg time.Duration
	avgMicros := 0.0
	if captures > 0 && total > 0 {
		avg = time.Duration(total / captures)
		avgMicros = float64(avg) / float64(time.Microsecond)
	}
	snapshot := s.LatestFrame()
	age := time.Duration(0)
	if !snapshot.CapturedAt.IsZero() {
		age = time.Since(snapshot.CapturedAt)
	}
	return CaptureStats{
		Captures:         captures,
		Skipped:          skipped,
		Published:        s.published.Load(),
		PublishErrors:    s.publishErrors.Load(),
		AvgCapture:       avg,
		AvgCaptureMicros: avgMicros,
		LastCapture:      snapshot.CapturedAt,
		LatestFrameAge:   age,
		Sequence:         snapshot.Sequence,
	}
}

func (s *captureService) Start() {
	if !s.running.CompareAndSwap(false, true) {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.mu.Lock()
	s.cancel, s.done = cancel, done
	s.mu.Unlock()
	go s.loop(ctx, done)
}

// Stop ends the capture loop and waits for the in-flight iteration to finish.
func (s *captureService) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (s *captureService) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	logTicker := time.NewTicker(captureStatsLogInterval)
	defer logTicker.Stop()
	frameTicker := time.NewTicker(s.cfg.FrameInterval())
	defer frameTicker.Stop()

	for {
		s.captureOnce(ctx)

		select {
		case <-logTicker.C:
			s.logStats()
		default:
		}

		select {
		case <-ctx.Done():
			return
		case <-frameTicker.C:
		}
	}
}

// captureOnce grabs, stores and publishes a single image.
func (s *captureService) captureOnce(ctx context.Context) {
	start := time.Now()
	s.mu.Lock()
	selFn, sink := s.selFn, s.sink
	s.mu.Unlock()

	var img *image.RGBA
	if selFn != nil {
		if r := selFn(); r != nil && !r.Empty() {
			if out, err := s.src.GrabSelection(*r); err == nil {
				img = out
			} else if s.logger != nil {
				s.logger.Error("capture selection", "error", err)
			}
		}
	}
	if img == nil {
		if full, err := s.src.Grab(); err != nil {
			if s.logger != nil {
				s.logger.Error("capture full", "error", err)
			}
		} else if full != nil {
			img = full
		}
	}
	if img == nil {
		s.skipped.Add(1)
		return
	}

	fitted := FitTarget(img, s.cfg.TargetAspectRatio, s.cfg.TargetResolution)
	now := time.Now()
	seq := s.sequence.Add(1)
	s.latest.Store(&FrameSnapshot{Image: fitted, CapturedAt: now, Sequence: seq})
	s.captureNanos.Add(uint64(time.Since(start).Nanoseconds()))
	s.captures.Add(1)

	if sink == nil {
		return
	}
	frame, err := FromImage(fitted, ConvertOptions{RowPadding: s.cfg.RowPadding, Timestamp: now, Sequence: seq})
	if err != nil {
		s.publishErrors.Add(1)
		if s.logger != nil {
			s.logger.Error("capture convert", "error", err)
		}
		return
	}
	if err := sink.Publish(ctx, frame); err != nil {
		frame.Release()
		s.publishErrors.Add(1)
		if ctx.Err() == nil && s.logger != nil {
			s.logger.Warn("capture publish", "error", err, "sequence", seq)
		}
		return
	}
	s.published.Add(1)
}

func (s *captureService) logStats() {
	if s.logger == nil {
		return
	}
	stats := s.Stats()
	s.logger.Debug("capture.stats",
		"captures", stats.Captures,
		"skipped", stats.Skipped,
		"published", stats.Published,
		"avg_capture_us", stats.AvgCaptureMicros,
		"age", stats.LatestFrameAge,
	)
}
