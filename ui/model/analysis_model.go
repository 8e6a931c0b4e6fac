package model

import (
	"sync/atomic"
)

// AnalysisModel tracks whether the analysis pipeline is enabled. The zero value is disabled and usable.
// Concurrency-safe via atomic Bool because UI callbacks and presenter ticks may race.
type AnalysisModel struct{ enabled atomic.Bool }

// Enabled reports whether analysis is currently enabled.
func (m *AnalysisModel) Enabled() bool {
	if m == nil {
		return false
	}
	return m.enabled.Load()
}

// SetEnabled stores the enabled flag.
func (m *AnalysisModel) SetEnabled(b bool) {
	if m == nil {
		return
	}
	m.enabled.Store(b)
}
