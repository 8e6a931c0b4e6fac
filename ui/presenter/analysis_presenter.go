package presenter

import "fmt"

// AnalysisModel provides enabled state access.
type AnalysisModel interface {
	Enabled() bool
	SetEnabled(bool)
}

// AnalysisController starts and stops frame analysis. StartAnalysis attaches
// the analyzer to its worker; StopAnalysis detaches it.
type AnalysisController interface {
	StartAnalysis() error
	StopAnalysis()
}

// AnalysisView updates UI elements affected by analysis toggling.
type AnalysisView interface {
	SetStatus(text string)
	LuminanceReset()
}

// AnalysisPresenter owns presentation logic for toggling luminance analysis.
type AnalysisPresenter struct {
	model AnalysisModel
	ctrl  AnalysisController
	view  AnalysisView
}

func NewAnalysisPresenter(model AnalysisModel, ctrl AnalysisController, view AnalysisView) *AnalysisPresenter {
	return &AnalysisPresenter{model: model, ctrl: ctrl, view: view}
}

func (p *AnalysisPresenter) ready() bool {
	return p != nil && p.model != nil && p.ctrl != nil && p.view != nil
}

// Enable attaches the analyzer. Idempotent; a failed start leaves analysis disabled.
func (p *AnalysisPresenter) Enable() {
	if !p.ready() || p.model.Enabled() {
		return
	}
	if err := p.ctrl.StartAnalysis(); err != nil {
		p.view.SetStatus(fmt.Sprintf("Analysis failed: %v", err))
		return
	}
	p.model.SetEnabled(true)
	p.view.SetStatus("Analysis ON")
}

// Disable detaches the analyzer and clears the luminance readout. Idempotent.
func (p *AnalysisPresenter) Disable() {
	if !p.ready() || !p.model.Enabled() {
		return
	}
	p.ctrl.StopAnalysis()
	p.model.SetEnabled(false)
	p.view.LuminanceReset()
	p.view.SetStatus("Analysis OFF")
}

// Toggle flips enabled state delegating to Enable/Disable.
func (p *AnalysisPresenter) Toggle() {
	if !p.ready() {
		return
	}
	if p.model.Enabled() {
		p.Disable()
		return
	}
	p.Enable()
}
