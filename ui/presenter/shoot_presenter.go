package presenter

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/soocke/lumacam-go/domain/capture"
	"github.com/soocke/lumacam-go/domain/still"
)

// StillSink persists photos asynchronously.
type StillSink interface {
	TakePictureAsync(img image.Image, cb still.OnImageSaved)
}

// StatusView shows one-line status messages.
type StatusView interface {
	SetStatus(text string)
}

type shootResult struct {
	path string
	err  error
}

// ShootPresenter handles the shoot button. Capture results arrive on the
// sink's goroutine and are shown on the next Tick from the UI thread.
type ShootPresenter struct {
	source  capture.FrameSource
	sink    StillSink
	view    StatusView
	logger  *slog.Logger
	results chan shootResult
}

func NewShootPresenter(source capture.FrameSource, sink StillSink, view StatusView, logger *slog.Logger) *ShootPresenter {
	return &ShootPresenter{source: source, sink: sink, view: view, logger: logger, results: make(chan shootResult, 4)}
}

// Shoot saves the latest snapshot.
func (p *ShootPresenter) Shoot() {
	if p == nil || p.source == nil || p.sink == nil || p.view == nil {
		return
	}
	snap := p.source.LatestFrame()
	if snap.Image == nil {
		p.view.SetStatus("Photo capture failed: no frame yet")
		return
	}
	p.sink.TakePictureAsync(snap.Image, p)
}

// Saved implements still.OnImageSaved.
func (p *ShootPresenter) Saved(path string) { p.push(shootResult{path: path}) }

// Error implements still.OnImageSaved.
func (p *ShootPresenter) Error(err error) { p.push(shootResult{err: err}) }

func (p *ShootPresenter) push(r shootResult) {
	select {
	case p.results <- r:
	default:
		if p.logger != nil {
			p.logger.Warn("shoot result dropped", "path", r.path, "error", r.err)
		}
	}
}

// Tick shows pending capture results.
func (p *ShootPresenter) Tick() {
	if p == nil || p.view == nil {
		return
	}
	for {
		select {
		case r := <-p.results:
			if r.err != nil {
				p.view.SetStatus(fmt.Sprintf("Photo capture failed: %v", r.err))
			} else {
				p.view.SetStatus("Photo capture succeeded: " + r.path)
			}
		default:
			return
		}
	}
}
