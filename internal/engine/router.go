package engine

import (
	"context"
	"log/slog"

	"github.com/Randhum/TimeClock/internal/model"
	"github.com/Randhum/TimeClock/internal/store"
)

// ScanRouter debounces tag reads, tags them with the current operating
// mode and routes them to the right handler.
//
// OnTag is the only entry point that runs on a foreign thread; it
// forwards straight onto the dispatcher. Everything else, including the
// mode field, lives on the loop goroutine.
type ScanRouter struct {
	dispatcher *Dispatcher
	store      *store.Store
	clock      *ClockEngine
	state      *AppState
	ui         UI
	feedback   Feedback
	tokens     ScanTokenGenerator
	logger     *slog.Logger

	mode Mode
}

// NewScanRouter wires a router in timeclock mode. ui, feedback and
// tokens may be nil; safe defaults are used.
func NewScanRouter(d *Dispatcher, st *store.Store, clock *ClockEngine, state *AppState, ui UI, feedback Feedback, tokens ScanTokenGenerator, logger *slog.Logger) *ScanRouter {
	if ui == nil {
		ui = LogUI{}
	}
	if feedback == nil {
		feedback = NopFeedback{}
	}
	if tokens == nil {
		tokens = UUIDv7Generator{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	r := &ScanRouter{
		dispatcher: d,
		store:      st,
		clock:      clock,
		state:      state,
		ui:         ui,
		feedback:   feedback,
		tokens:     tokens,
		logger:     logger,
		mode:       ModeTimeclock,
	}
	state.OnPendingExpired = func() {
		if r.mode == ModeEntryEditPending {
			r.mode = ModeAdmin
			r.ui.ModeChanged(ModeAdmin)
		}
	}
	return r
}

// OnTag is the TagSource callback. Safe to invoke from the hardware
// worker thread; it forwards to the dispatcher and returns immediately.
func (r *ScanRouter) OnTag(raw string) {
	r.dispatcher.Post(func() {
		r.handleScan(context.Background(), raw)
	})
}

// Mode returns the current operating mode. Loop goroutine only.
func (r *ScanRouter) Mode() Mode {
	return r.mode
}

// SetMode records a mode switch initiated by the UI adapter.
// Loop goroutine only.
func (r *ScanRouter) SetMode(m Mode) {
	r.mode = m
}

// BeginEntryEdit arms a badge confirmation for the employee whose
// entries are about to be edited and switches to entry_edit_pending.
// Loop goroutine only.
func (r *ScanRouter) BeginEntryEdit(emp model.Employee) {
	r.state.SetPending(PendingIdentification{
		Employee: emp,
		Token:    r.tokens.Generate(),
	})
	r.mode = ModeEntryEditPending
}

// handleScan applies debounce and mode dispatch to a raw tag read.
// Loop goroutine only.
func (r *ScanRouter) handleScan(ctx context.Context, raw string) {
	tag, err := model.NormalizeTag(raw)
	if err != nil {
		r.logger.Warn("rejecting malformed tag read", "error", err)
		r.feedback.IndicateError()
		return
	}

	if r.state.IsRecentScan(tag) {
		r.logger.Debug("dropping duplicate scan", "tag", tag)
		return
	}

	token := r.tokens.Generate()
	log := r.logger.With("scan", token, "tag", tag, "mode", r.mode.String())
	log.Debug("scan accepted")

	emp, err := r.store.GetEmployeeByTag(ctx, tag)
	if err != nil {
		log.Error("employee lookup failed", "error", err)
		r.feedback.IndicateError()
		r.ui.ShowError("Database Error", "Could not read the employee database. Try again.")
		return
	}

	switch r.mode {
	case ModeEntryEditPending:
		r.handlePendingIdentification(log, tag, token, emp)
	case ModeTimeclock:
		r.handleTimeclockScan(ctx, log, tag, token, emp)
	case ModeRegister:
		r.handleRegisterScan(log, tag, emp)
	case ModeIdentify:
		r.handleIdentifyScan(log, tag, token, emp)
	case ModeAdmin:
		r.handleAdminScan(log, emp)
	}
}

func (r *ScanRouter) handleTimeclockScan(ctx context.Context, log *slog.Logger, tag, token string, emp *model.Employee) {
	if emp == nil {
		log.Warn("scan error", "error", NewUnknownTagError(tag, token))
		r.feedback.IndicateError()
		r.ui.ShowError("Unknown Badge", "This badge is not registered.")
		return
	}

	if emp.IsAdmin {
		log.Info("admin badge, entering admin mode", "employee", emp.Name)
		r.mode = ModeAdmin
		r.ui.ModeChanged(ModeAdmin)
		return
	}

	result := r.clock.PerformClockAction(ctx, *emp)
	if !result.Success {
		r.ui.ShowError("Error", "Failed to record time. Try again.")
		return
	}
	r.ui.ShowGreeting(result)
}

func (r *ScanRouter) handleRegisterScan(log *slog.Logger, tag string, emp *model.Employee) {
	if emp != nil {
		log.Warn("tag already registered", "employee", emp.Name)
		r.feedback.IndicateError()
		r.ui.ShowError("Badge In Use", "This badge is already registered to "+emp.Name+".")
		return
	}
	log.Info("tag captured for registration")
	r.feedback.IndicateSuccess()
	r.ui.TagCaptured(tag)
}

func (r *ScanRouter) handleIdentifyScan(log *slog.Logger, tag, token string, emp *model.Employee) {
	if emp == nil {
		log.Warn("scan error", "error", NewUnknownTagError(tag, token))
		r.feedback.IndicateError()
		r.ui.ShowError("Unknown Badge", "This badge is not registered.")
		return
	}
	r.feedback.IndicateSuccess()
	r.ui.ShowIdentity(*emp)
}

func (r *ScanRouter) handleAdminScan(log *slog.Logger, emp *model.Employee) {
	if emp == nil {
		r.feedback.IndicateError()
		r.ui.ShowError("Unknown Badge", "This badge is not registered.")
		return
	}
	if !emp.IsAdmin {
		log.Info("employee badge in admin mode", "employee", emp.Name)
		r.ui.ShowInfo("Admin Mode", "Switch to timeclock mode to clock in or out.")
		return
	}
	// Admin badge in admin mode: stay.
}

func (r *ScanRouter) handlePendingIdentification(log *slog.Logger, tag, token string, emp *model.Employee) {
	pending := r.state.Pending()
	if pending == nil {
		// Expired between dispatch and handling; fall back to admin.
		r.mode = ModeAdmin
		r.ui.ModeChanged(ModeAdmin)
		return
	}

	if emp == nil || emp.ID != pending.Employee.ID {
		log.Warn("scan error", "error", NewIdentificationMismatchError(tag, token))
		r.feedback.IndicateError()
		r.ui.ShowError("Wrong Badge", "Scan the badge of "+pending.Employee.Name+" to continue.")
		return
	}

	log.Info("pending identification confirmed", "employee", emp.Name)
	r.state.ClearPending()
	r.mode = ModeAdmin
	r.feedback.IndicateSuccess()
	r.ui.EntryEditorUnlocked(*emp)
}
