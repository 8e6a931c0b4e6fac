package analysis

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/soocke/lumacam-go/config"
	"github.com/soocke/lumacam-go/domain/capture"
)

var (
	// ErrAnalyzerSet is returned by SetAnalyzer when a handler is already attached.
	ErrAnalyzerSet = errors.New("analysis: analyzer already set")
	// ErrNilHandler is returned by SetAnalyzer for a nil handler.
	ErrNilHandler = errors.New("analysis: nil handler")
)

// Handler consumes one frame. It runs on the worker passed to SetAnalyzer
// and must not keep f or its plane data after returning: the frame is
// released as soon as the handler returns.
type Handler func(f *capture.Frame)

// AnalysisStats summarises delivery behaviour.
type AnalysisStats struct {
	Published uint64
	Dropped   uint64
	Analyzed  uint64
	Pending   int
}

// ImageAnalysis is the analysis use case: it accepts frames from the capture
// service and delivers them, one at a time, to a handler running on an
// explicitly owned Worker.
type ImageAnalysis struct {
	mailbox *Mailbox
	logger  *slog.Logger

	mu       sync.Mutex
	handler  Handler
	worker   *Worker
	detach   chan struct{}
	loopDone chan struct{}

	analyzed atomic.Uint64
}

// NewImageAnalysis returns an analysis use case with the given delivery policy.
func NewImageAnalysis(mode config.DeliveryMode, queueDepth int, logger *slog.Logger) *ImageAnalysis {
	return &ImageAnalysis{mailbox: NewMailbox(mode, queueDepth), logger: logger}
}

// SetAnalyzer attaches h and starts delivering frames to it on w. The worker
// must already be running.
func (a *ImageAnalysis) SetAnalyzer(w *Worker, h Handler) error {
	if h == nil {
		return ErrNilHandler
	}
	if w == nil {
		return ErrWorkerStopped
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.handler != nil {
		return ErrAnalyzerSet
	}
	// Frames that slipped in after the previous detach are stale.
	a.mailbox.Drain()
	detach := make(chan struct{})
	loopDone := make(chan struct{})
	if err := w.Submit(func(ctx context.Context) { a.drain(ctx, h, detach, loopDone) }); err != nil {
		return err
	}
	a.handler, a.worker, a.detach, a.loopDone = h, w, detach, loopDone
	if a.logger != nil {
		a.logger.Info("analyzer attached", "worker", w.Name(), "delivery", string(a.mailbox.Mode()))
	}
	return nil
}

// ClearAnalyzer detaches the current handler. A handler invocation already
// in progress finishes first; frames still pending are released.
func (a *ImageAnalysis) ClearAnalyzer() {
	a.mu.Lock()
	if a.handler == nil {
		a.mu.Unlock()
		return
	}
	close(a.detach)
	w, loopDone := a.worker, a.loopDone
	a.handler, a.worker, a.detach, a.loopDone = nil, nil, nil, nil
	a.mu.Unlock()

	select {
	case <-loopDone:
	case <-w.Done():
	}
	n := a.mailbox.Drain()
	if a.logger != nil {
		a.logger.Info("analyzer detached", "released_pending", n)
	}
}

// HasAnalyzer reports whether a handler is attached.
func (a *ImageAnalysis) HasAnalyzer() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.handler != nil
}

// Publish implements capture.FrameSink. Without an attached analyzer the
// frame is released immediately.
func (a *ImageAnalysis) Publish(ctx context.Context, f *capture.Frame) error {
	if !a.HasAnalyzer() {
		a.mailbox.Drop(f)
		return nil
	}
	if err := a.mailbox.Publish(ctx, f); err != nil {
		return err
	}
	// ClearAnalyzer may have drained the mailbox while f was being queued.
	if !a.HasAnalyzer() {
		a.mailbox.Drain()
	}
	return nil
}

// Stats returns delivery counters.
func (a *ImageAnalysis) Stats() AnalysisStats {
	return AnalysisStats{
		Published: a.mailbox.Published(),
		Dropped:   a.mailbox.Dropped(),
		Analyzed:  a.analyzed.Load(),
		Pending:   a.mailbox.Pending(),
	}
}

func (a *ImageAnalysis) drain(ctx context.Context, h Handler, detach <-chan struct{}, done chan struct{}) {
	defer close(done)
	frames := a.mailbox.Frames()
	for {
		select {
		case <-ctx.Done():
			return
		case <-detach:
			return
		case f := <-frames:
			// detach and a queued frame can be ready together; detach wins.
			select {
			case <-detach:
				a.mailbox.Drop(f)
				return
			default:
			}
			a.deliver(h, f)
		}
	}
}

func (a *ImageAnalysis) deliver(h Handler, f *capture.Frame) {
	defer func() {
		f.Release()
		if r := recover(); r != nil && a.logger != nil {
			a.logger.Error("analyzer panic", "sequence", f.Sequence, "panic", r)
		}
	}()
	h(f)
	a.analyzed.Add(1)
}
