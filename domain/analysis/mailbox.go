package analysis

import (
	"context"
	"sync/atomic"

	"github.com/soocke/lumacam-go/config"
	"github.com/soocke/lumacam-go/domain/capture"
)

// Mailbox hands frames from the capture goroutine to the analysis worker.
//
// In DeliveryKeepLatest mode it is a single-slot channel: publishing while a
// frame is still pending replaces it and the replaced frame is released, so
// Publish never blocks. In DeliveryAcquireNext mode it is a bounded queue and
// Publish waits for room.
type Mailbox struct {
	mode config.DeliveryMode
	ch   chan *capture.Frame

	published atomic.Uint64
	dropped   atomic.Uint64
}

// NewMailbox returns a mailbox for mode. depth only applies to DeliveryAcquireNext.
func NewMailbox(mode config.DeliveryMode, depth int) *Mailbox {
	size := 1
	if mode == config.DeliveryAcquireNext && depth > 1 {
		size = depth
	}
	if mode != config.DeliveryAcquireNext {
		mode = config.DeliveryKeepLatest
	}
	return &Mailbox{mode: mode, ch: make(chan *capture.Frame, size)}
}

// Mode reports the delivery policy.
func (m *Mailbox) Mode() config.DeliveryMode { return m.mode }

// Frames is the receive side consumed by the analysis loop.
func (m *Mailbox) Frames() <-chan *capture.Frame { return m.ch }

// Publish enqueues f, taking ownership of it.
func (m *Mailbox) Publish(ctx context.Context, f *capture.Frame) error {
	if f == nil {
		return nil
	}
	if m.mode == config.DeliveryAcquireNext {
		select {
		case m.ch <- f:
			m.published.Add(1)
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	for {
		select {
		case m.ch <- f:
			m.published.Add(1)
			return nil
		default:
		}
		// Slot occupied: evict the stale frame and retry. The consumer may
		// have taken it in the meantime, in which case the send succeeds.
		select {
		case old := <-m.ch:
			old.Release()
			m.dropped.Add(1)
		default:
		}
	}
}

// Drop releases f without delivering it and counts it as dropped.
func (m *Mailbox) Drop(f *capture.Frame) {
	if f == nil {
		return
	}
	f.Release()
	m.dropped.Add(1)
}

// Drain releases every pending frame and returns how many there were.
func (m *Mailbox) Drain() int {
	n := 0
	for {
		select {
		case f := <-m.ch:
			f.Release()
			n++
		default:
			return n
		}
	}
}

// Pending reports the number of queued frames.
func (m *Mailbox) Pending() int { return len(m.ch) }

// Published reports how many frames were accepted.
func (m *Mailbox) Published() uint64 { return m.published.Load() }

// Dropped reports how many frames were evicted or discarded.
func (m *Mailbox) Dropped() uint64 { return m.dropped.Load() }
