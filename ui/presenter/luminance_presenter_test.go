package presenter

import (
	"testing"

	"github.com/soocke/lumacam-go/domain/analysis"
	"github.com/soocke/lumacam-go/ui/model"
)

type mockLumaView struct{ texts []string }

func (v *mockLumaView) SetLuminance(s string) { v.texts = append(v.texts, s) }

func TestLuminancePresenter_PushesOnNewSamples(t *testing.T) {
	m := model.NewLuminanceModel(4)
	enabled := &mockModel{enabled: true}
	view := &mockLumaView{}
	p := NewLuminancePresenter(m, enabled, view)

	p.Tick()
	if len(view.texts) != 0 {
		t.Fatalf("no samples yet, got %v", view.texts)
	}
	m.Record(analysis.Sample{Luma: 100})
	m.Record(analysis.Sample{Luma: 50})
	p.Tick()
	p.Tick()
	if len(view.texts) != 1 {
		t.Fatalf("expected one update, got %d", len(view.texts))
	}
	want := "Luma: 50.0  avg 75.0 ± 35.4  [50..100] n=2"
	if view.texts[0] != want {
		t.Fatalf("got %q want %q", view.texts[0], want)
	}
}

func TestLuminancePresenter_DisabledSkips(t *testing.T) {
	m := model.NewLuminanceModel(4)
	m.Record(analysis.Sample{Luma: 1})
	view := &mockLumaView{}
	NewLuminancePresenter(m, &mockModel{}, view).Tick()
	if len(view.texts) != 0 {
		t.Fatalf("disabled presenter must not update view")
	}
}

func TestFormatSummary_Empty(t *testing.T) {
	if got := FormatSummary(analysis.Summary{}); got != "Luma: -" {
		t.Fatalf("got %q", got)
	}
}

func TestLoop_TickNilSafe(t *testing.T) {
	var l *Loop
	l.Tick()
	scheduled := 0
	NewLoop(nil, nil, nil, func() { scheduled++ }).Tick()
	if scheduled != 1 {
		t.Fatalf("schedule not invoked")
	}
}
