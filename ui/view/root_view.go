package view

import (
	"image"
	"log/slog"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the top-level application layout and wires UI callbacks.
type RootView struct {
	logger *slog.Logger

	Preview Preview

	LumaLabel   *LabelWidget
	StatusLabel *LabelWidget
}

// UI abstracts the subset of view operations needed by presenters.
type UI interface {
	SetStatus(text string)
	SetLuminance(text string)
	LuminanceReset()
	UpdatePreview(img image.Image)
	PreviewReset()
}

var _ UI = (*RootView)(nil)

func NewRootView(logger *slog.Logger) *RootView {
	return &RootView{logger: logger}
}

// Build constructs the layout. Handlers are invoked on button presses.
func (rv *RootView) Build(onShoot, onToggleAnalysis, onExit func()) {
	if rv == nil {
		return
	}
	rv.Preview = NewPreview(0)

	rv.LumaLabel = Label(Txt("Luma: -"), Borderwidth(1), Relief("ridge"))
	Grid(rv.LumaLabel, Row(1), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	btnFrame := Frame()
	Grid(btnFrame, Row(2), Column(0), Columnspan(3), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	shootBtn := Button(Txt("Shoot"), Command(onShoot))
	Grid(shootBtn, In(btnFrame), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	analysisBtn := Button(Txt("Toggle Analysis"), Command(onToggleAnalysis))
	Grid(analysisBtn, In(btnFrame), Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	exitBtn := Button(Txt("Exit"), Command(onExit))
	Grid(exitBtn, In(btnFrame), Row(0), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	rv.StatusLabel = Label(Txt("Ready"), Anchor("w"))
	Grid(rv.StatusLabel, Row(3), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
}

// SetStatus updates the status line.
func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.StatusLabel != nil {
		rv.StatusLabel.Configure(Txt(text))
	}
	if rv != nil && rv.logger != nil {
		rv.logger.Info("status", "text", text)
	}
}

// SetLuminance updates the brightness readout.
func (rv *RootView) SetLuminance(text string) {
	if rv != nil && rv.LumaLabel != nil {
		rv.LumaLabel.Configure(Txt(text))
	}
}

func (rv *RootView) LuminanceReset() { rv.SetLuminance("Luma: -") }

// UpdatePreview proxies to the preview subview.
func (rv *RootView) UpdatePreview(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.Update(img)
	}
}

// PreviewReset clears the preview label.
func (rv *RootView) PreviewReset() {
	if rv != nil && rv.Preview != nil {
		rv.Preview.Reset()
	}
}
