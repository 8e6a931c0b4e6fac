package presenter

import (
	"fmt"

	"github.com/soocke/lumacam-go/domain/analysis"
	"github.com/soocke/lumacam-go/ui/model"
)

// EnabledModel reports whether analysis is enabled.
type EnabledModel interface{ Enabled() bool }

// LuminanceView displays the brightness readout.
type LuminanceView interface {
	SetLuminance(text string)
}

// LuminancePresenter formats the luminance model for the view.
type LuminancePresenter struct {
	model   *model.LuminanceModel
	enabled EnabledModel
	view    LuminanceView
	seen    uint64
}

func NewLuminancePresenter(m *model.LuminanceModel, enabled EnabledModel, view LuminanceView) *LuminancePresenter {
	return &LuminancePresenter{model: m, enabled: enabled, view: view}
}

// Tick pushes the summary to the view when new samples arrived.
func (p *LuminancePresenter) Tick() {
	if p == nil || p.model == nil || p.enabled == nil || p.view == nil {
		return
	}
	if !p.enabled.Enabled() {
		return
	}
	sum, total := p.model.Snapshot()
	if total == p.seen || sum.Count == 0 {
		return
	}
	p.seen = total
	p.view.SetLuminance(FormatSummary(sum))
}

// FormatSummary renders a summary as a single label line.
func FormatSummary(s analysis.Summary) string {
	if s.Count == 0 {
		return "Luma: -"
	}
	return fmt.Sprintf("Luma: %.1f  avg %.1f ± %.1f  [%.0f..%.0f] n=%d",
		s.Latest.Luma, s.Mean, s.StdDev, s.Min, s.Max, s.Count)
}
