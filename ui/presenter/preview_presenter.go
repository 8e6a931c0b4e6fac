package presenter

import (
	"image"

	"github.com/soocke/lumacam-go/domain/capture"
	"github.com/soocke/lumacam-go/ui/images"
)

// PreviewView renders the live feed.
type PreviewView interface {
	UpdatePreview(img image.Image)
	PreviewReset()
}

// PreviewPresenter pushes new snapshots to the preview, applying the display
// rotation transform. Frames already shown are not re-rendered.
type PreviewPresenter struct {
	source   capture.FrameSource
	view     PreviewView
	rotation int
	lastSeq  uint64
	shown    bool
}

func NewPreviewPresenter(source capture.FrameSource, view PreviewView, rotation int) *PreviewPresenter {
	return &PreviewPresenter{source: source, view: view, rotation: rotation}
}

// ProcessFrame renders the latest snapshot if it is new. When the source
// stops the preview is reset once.
func (p *PreviewPresenter) ProcessFrame() {
	if p == nil || p.source == nil || p.view == nil {
		return
	}
	if !p.source.Running() {
		if p.shown {
			p.view.PreviewReset()
			p.shown = false
		}
		return
	}
	snap := p.source.LatestFrame()
	if snap.Image == nil || (p.shown && snap.Sequence == p.lastSeq) {
		return
	}
	p.lastSeq = snap.Sequence
	p.shown = true
	p.view.UpdatePreview(images.RotateForDisplay(snap.Image, p.rotation))
}
