package analysis

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the samples currently held by a Window.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Latest Sample
}

// Window keeps the most recent samples in a ring buffer.
// Not safe for concurrent use.
type Window struct {
	values []float64
	next   int
	full   bool
	latest Sample
}

// NewWindow returns a window holding up to size samples (minimum 1).
func NewWindow(size int) *Window {
	if size < 1 {
		size = 1
	}
	return &Window{values: make([]float64, size)}
}

// Add records s, evicting the oldest sample when full.
func (w *Window) Add(s Sample) {
	w.values[w.next] = s.Luma
	w.next++
	if w.next == len(w.values) {
		w.next = 0
		w.full = true
	}
	w.latest = s
}

// Len returns the number of samples held.
func (w *Window) Len() int {
	if w.full {
		return len(w.values)
	}
	return w.next
}

// Summary computes statistics over the held samples. The standard deviation
// is the unbiased estimate and is zero below two samples.
func (w *Window) Summary() Summary {
	n := w.Len()
	if n == 0 {
		return Summary{}
	}
	xs := w.values[:n]
	out := Summary{Count: n, Latest: w.latest, Min: floats.Min(xs), Max: floats.Max(xs)}
	if n == 1 {
		out.Mean = xs[0]
		return out
	}
	out.Mean, out.StdDev = stat.MeanStdDev(xs, nil)
	return out
}

// Reset discards all samples.
func (w *Window) Reset() {
	for i := range w.values {
		w.values[i] = 0
	}
	w.next, w.full = 0, false
	w.latest = Sample{}
}
