package engine

import (
	"time"

	"github.com/Randhum/TimeClock/internal/model"
)

// Default state timeouts. All three are configurable; the sources
// disagree on the numbers, these are the adopted defaults.
const (
	DefaultScanDebounce    = 1200 * time.Millisecond
	DefaultEmployeeTimeout = 120 * time.Second
	DefaultPendingTimeout  = 30 * time.Second
)

// PendingIdentification is a badge-confirmation request: the entry
// editor may only open once the target employee's badge is scanned.
type PendingIdentification struct {
	Employee model.Employee
	Token    string
}

// AppState holds the in-memory application state: the last clocked
// employee (with expiry), the pending identification handle, and the
// recent-scan table used for debouncing.
//
// AppState is owned by the dispatcher; every method must be called from
// the loop goroutine. Expiry timers post their callbacks back through
// the dispatcher, so no mutex is needed.
type AppState struct {
	dispatcher *Dispatcher

	scanDebounce    time.Duration
	employeeTimeout time.Duration
	pendingTimeout  time.Duration

	lastClocked      *model.Employee
	lastClockedTimer *time.Timer

	pending      *PendingIdentification
	pendingTimer *time.Timer

	recentScans map[string]time.Time

	// OnPendingExpired fires on the loop goroutine when a pending
	// identification times out, after the handle is cleared.
	OnPendingExpired func()

	// now is replaceable in tests.
	now func() time.Time
}

// NewAppState creates state with the given timeouts; zero values fall
// back to the defaults.
func NewAppState(d *Dispatcher, scanDebounce, employeeTimeout, pendingTimeout time.Duration) *AppState {
	if scanDebounce <= 0 {
		scanDebounce = DefaultScanDebounce
	}
	if employeeTimeout <= 0 {
		employeeTimeout = DefaultEmployeeTimeout
	}
	if pendingTimeout <= 0 {
		pendingTimeout = DefaultPendingTimeout
	}
	return &AppState{
		dispatcher:      d,
		scanDebounce:    scanDebounce,
		employeeTimeout: employeeTimeout,
		pendingTimeout:  pendingTimeout,
		recentScans:     make(map[string]time.Time),
		now:             time.Now,
	}
}

// LastClockedEmployee returns the last clocked employee, or nil after
// expiry.
func (s *AppState) LastClockedEmployee() *model.Employee {
	return s.lastClocked
}

// SetLastClockedEmployee records the employee and (re)arms the expiry
// timer.
func (s *AppState) SetLastClockedEmployee(emp model.Employee) {
	s.lastClocked = &emp
	if s.lastClockedTimer != nil {
		s.lastClockedTimer.Stop()
	}
	s.lastClockedTimer = s.dispatcher.ScheduleAfter(s.employeeTimeout, func() {
		s.lastClocked = nil
		s.lastClockedTimer = nil
	})
}

// ClearLastClockedEmployee drops the handle and cancels the timer.
func (s *AppState) ClearLastClockedEmployee() {
	s.lastClocked = nil
	if s.lastClockedTimer != nil {
		s.lastClockedTimer.Stop()
		s.lastClockedTimer = nil
	}
}

// IsRecentScan reports whether the tag was accepted within the debounce
// window. A scan outside the window is recorded as the tag's new
// last-accepted time.
func (s *AppState) IsRecentScan(tag string) bool {
	now := s.now()
	if last, ok := s.recentScans[tag]; ok && now.Sub(last) < s.scanDebounce {
		return true
	}
	s.recentScans[tag] = now
	return false
}

// Pending returns the pending identification handle, or nil.
func (s *AppState) Pending() *PendingIdentification {
	return s.pending
}

// SetPending arms a pending identification with its expiry timer.
func (s *AppState) SetPending(p PendingIdentification) {
	s.pending = &p
	if s.pendingTimer != nil {
		s.pendingTimer.Stop()
	}
	s.pendingTimer = s.dispatcher.ScheduleAfter(s.pendingTimeout, func() {
		if s.pending == nil {
			return
		}
		s.pending = nil
		s.pendingTimer = nil
		if s.OnPendingExpired != nil {
			s.OnPendingExpired()
		}
	})
}

// ClearPending drops the handle and cancels the timer.
func (s *AppState) ClearPending() {
	s.pending = nil
	if s.pendingTimer != nil {
		s.pendingTimer.Stop()
		s.pendingTimer = nil
	}
}
