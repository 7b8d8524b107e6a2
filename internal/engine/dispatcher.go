package engine

import (
	"context"
	"log/slog"
	"time"
)

// Dispatcher is the single-threaded cooperative loop that owns all
// mutable application state and every call into the store.
//
// External callers (the RFID worker, timer goroutines, the CLI) use
// Post() to submit work; the work runs to completion on the loop
// goroutine before the next task starts.
//
// Thread-safety model:
//   - Post(): safe from any goroutine
//   - ScheduleAfter(): safe from any goroutine
//   - Run(): must be called from exactly one goroutine
type Dispatcher struct {
	queue  *taskQueue
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher with an empty task queue.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		queue:  newTaskQueue(),
		logger: logger,
	}
}

// Post enqueues a task for execution on the loop goroutine.
// Returns false if the dispatcher has been stopped.
func (d *Dispatcher) Post(fn func()) bool {
	return d.queue.Enqueue(fn)
}

// ScheduleAfter arranges for fn to run on the loop goroutine after the
// delay. The returned timer can be stopped to cancel the callback; a
// timer firing after Stop() is silently dropped by the closed queue.
func (d *Dispatcher) ScheduleAfter(delay time.Duration, fn func()) *time.Timer {
	return time.AfterFunc(delay, func() {
		d.queue.Enqueue(fn)
	})
}

// Run starts the single-writer loop. Blocks until the context is
// cancelled or Stop() is called with the queue drained.
//
// ERROR HANDLING: tasks are closures that report their own failures to
// the UI adapter; a panic inside a task is not recovered, matching the
// kiosk's fail-fast posture.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.logger.Info("dispatcher starting")

	for {
		// Try non-blocking dequeue first
		fn, ok := d.queue.TryDequeue()
		if ok {
			fn()
			continue
		}

		// No task ready - wait for signal or context cancellation
		select {
		case <-ctx.Done():
			d.logger.Info("dispatcher stopping: context cancelled")
			d.queue.Close()
			return ctx.Err()

		case <-d.queue.Wait():
			// The signal channel closes when the queue is closed,
			// which makes this case fire immediately
			if d.queue.Closed() && d.queue.Len() == 0 {
				d.logger.Info("dispatcher stopping: queue closed")
				return nil
			}
		}
	}
}

// Stop gracefully shuts down the dispatcher.
// Closes the task queue; Run() returns after draining queued tasks.
func (d *Dispatcher) Stop() {
	d.queue.Close()
}
