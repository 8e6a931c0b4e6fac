package analysis

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ErrWorkerStopped is returned when submitting to a worker that is not running.
var ErrWorkerStopped = errors.New("analysis: worker not running")

// Job is a unit of work run on a Worker. Long-running jobs must return once
// ctx is done.
type Job func(ctx context.Context)

// Worker is a named execution context backed by one goroutine. Jobs run one
// at a time in submission order. The zero value is not usable; call NewWorker.
type Worker struct {
	name   string
	logger *slog.Logger

	mu      sync.Mutex
	running bool
	jobs    chan Job
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewWorker returns a stopped worker.
func NewWorker(name string, logger *slog.Logger) *Worker {
	return &Worker{name: name, logger: logger}
}

// Name returns the worker name used in logs.
func (w *Worker) Name() string { return w.name }

// Running reports whether the worker goroutine is active.
func (w *Worker) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Start launches the worker goroutine. Starting a running worker is a no-op.
func (w *Worker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return
	}
	w.ctx, w.cancel = context.WithCancel(context.Background())
	w.jobs = make(chan Job, 8)
	w.done = make(chan struct{})
	w.running = true
	go w.run(w.ctx, w.jobs, w.done)
	if w.logger != nil {
		w.logger.Debug("worker started", "worker", w.name)
	}
}

// Stop cancels the running job, discards queued ones and waits for the
// goroutine to exit. Stopping a stopped worker is a no-op.
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	cancel, done := w.cancel, w.done
	w.mu.Unlock()

	cancel()
	<-done
	if w.logger != nil {
		w.logger.Debug("worker stopped", "worker", w.name)
	}
}

// Done is closed when the current run of the worker exits. It returns a
// closed channel for a worker that was never started.
func (w *Worker) Done() <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done == nil {
		c := make(chan struct{})
		close(c)
		return c
	}
	return w.done
}

// Submit queues job. It blocks while the queue is full and fails with
// ErrWorkerStopped when the worker is not running or stops meanwhile.
func (w *Worker) Submit(job Job) error {
	if job == nil {
		return errors.New("analysis: nil job")
	}
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return ErrWorkerStopped
	}
	ctx, jobs := w.ctx, w.jobs
	w.mu.Unlock()

	select {
	case jobs <- job:
		return nil
	case <-ctx.Done():
		return ErrWorkerStopped
	}
}

func (w *Worker) run(ctx context.Context, jobs <-chan Job, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-jobs:
			w.exec(ctx, job)
		}
	}
}

func (w *Worker) exec(ctx context.Context, job Job) {
	defer func() {
		if r := recover(); r != nil && w.logger != nil {
			w.logger.Error("worker job panic", "worker", w.name, "panic", r)
		}
	}()
	job(ctx)
}
