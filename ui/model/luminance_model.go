package model

import (
	"sync"

	"github.com/soocke/lumacam-go/domain/analysis"
)

// LuminanceModel holds the latest brightness sample and a rolling summary.
// Record is called from the analysis worker and Snapshot from the UI tick.
type LuminanceModel struct {
	mu      sync.Mutex
	window  *analysis.Window
	samples uint64
}

// NewLuminanceModel returns a model summarising the last window samples.
func NewLuminanceModel(window int) *LuminanceModel {
	return &LuminanceModel{window: analysis.NewWindow(window)}
}

// Record adds a sample.
func (m *LuminanceModel) Record(s analysis.Sample) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.window.Add(s)
	m.samples++
	m.mu.Unlock()
}

// Snapshot returns the current summary and the total number of samples recorded.
func (m *LuminanceModel) Snapshot() (analysis.Summary, uint64) {
	if m == nil {
		return analysis.Summary{}, 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.window.Summary(), m.samples
}

// Reset clears the window; the running total is kept.
func (m *LuminanceModel) Reset() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.window.Reset()
	m.mu.Unlock()
}
