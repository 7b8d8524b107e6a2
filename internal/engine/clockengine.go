package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/Randhum/TimeClock/internal/model"
	"github.com/Randhum/TimeClock/internal/store"
)

// Feedback is the LED surface of a tag source. Both calls are
// fire-and-forget and safe from any goroutine.
type Feedback interface {
	IndicateSuccess()
	IndicateError()
}

// NopFeedback discards LED commands. Used when no tag source is wired.
type NopFeedback struct{}

func (NopFeedback) IndicateSuccess() {}
func (NopFeedback) IndicateError()   {}

// ClockResult is the outcome of one clock action.
type ClockResult struct {
	Success  bool
	Action   model.Action
	Entry    model.TimeEntry
	Employee model.Employee
	Err      error
}

// ClockEngine turns an identified employee into a persisted clock
// action. Action determination and insert happen in the store under the
// employee's lock; the engine adds the state and LED side effects.
type ClockEngine struct {
	store    *store.Store
	state    *AppState
	feedback Feedback
	logger   *slog.Logger

	// now is replaceable in tests.
	now func() time.Time
}

// NewClockEngine wires a clock engine. feedback may be nil.
func NewClockEngine(st *store.Store, state *AppState, feedback Feedback, logger *slog.Logger) *ClockEngine {
	if feedback == nil {
		feedback = NopFeedback{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ClockEngine{
		store:    st,
		state:    state,
		feedback: feedback,
		logger:   logger,
		now:      time.Now,
	}
}

// PerformClockAction records a clock action for the employee at the
// current time. Must be called on the dispatcher goroutine.
//
// On success the tag source flashes green and the employee becomes the
// last-clocked employee; on failure the tag source blinks red and the
// result carries the error.
func (e *ClockEngine) PerformClockAction(ctx context.Context, emp model.Employee) ClockResult {
	entry, err := e.store.CreateTimeEntry(ctx, emp, e.now())
	if err != nil {
		e.logger.Error("clock action failed",
			"employee", emp.Name,
			"error", err,
		)
		e.feedback.IndicateError()
		return ClockResult{Employee: emp, Err: err}
	}

	e.logger.Info("clocked",
		"employee", emp.Name,
		"action", entry.Action,
		"entry_id", entry.ID,
	)
	e.feedback.IndicateSuccess()
	if e.state != nil {
		e.state.SetLastClockedEmployee(emp)
	}

	return ClockResult{
		Success:  true,
		Action:   entry.Action,
		Entry:    entry,
		Employee: emp,
	}
}
