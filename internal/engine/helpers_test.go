package engine

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Randhum/TimeClock/internal/model"
	"github.com/Randhum/TimeClock/internal/store"
)

// newTestStore opens a temp store with an admin and one employee.
func newTestStore(t *testing.T) (*store.Store, model.Employee, model.Employee) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ctx := context.Background()
	admin, err := s.CreateEmployee(ctx, "Admin", "AD000001", true)
	require.NoError(t, err)
	alice, err := s.CreateEmployee(ctx, "Alice", "AAAA1111", false)
	require.NoError(t, err)
	return s, admin, alice
}

// recordingUI captures every UI callback for assertions.
type recordingUI struct {
	mu        sync.Mutex
	errors    []string
	infos     []string
	greetings []ClockResult
	captured  []string
	identity  []model.Employee
	unlocked  []model.Employee
	modes     []Mode
}

func (u *recordingUI) ShowError(title, message string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.errors = append(u.errors, title+": "+message)
}

func (u *recordingUI) ShowInfo(title, message string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.infos = append(u.infos, title+": "+message)
}

func (u *recordingUI) ShowGreeting(result ClockResult) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.greetings = append(u.greetings, result)
}

func (u *recordingUI) TagCaptured(tag string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.captured = append(u.captured, tag)
}

func (u *recordingUI) ShowIdentity(emp model.Employee) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.identity = append(u.identity, emp)
}

func (u *recordingUI) EntryEditorUnlocked(emp model.Employee) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.unlocked = append(u.unlocked, emp)
}

func (u *recordingUI) ModeChanged(mode Mode) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.modes = append(u.modes, mode)
}

// fakeFeedback counts LED commands.
type fakeFeedback struct {
	mu        sync.Mutex
	successes int
	errors    int
}

func (f *fakeFeedback) IndicateSuccess() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.successes++
}

func (f *fakeFeedback) IndicateError() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors++
}

// newTestRouter builds a router with recording collaborators. The
// dispatcher is created but not run; tests drive handleScan directly on
// the test goroutine, which stands in for the loop thread.
func newTestRouter(t *testing.T, s *store.Store) (*ScanRouter, *AppState, *recordingUI, *fakeFeedback) {
	t.Helper()
	d := NewDispatcher(nil)
	state := NewAppState(d, DefaultScanDebounce, DefaultEmployeeTimeout, DefaultPendingTimeout)
	ui := &recordingUI{}
	feedback := &fakeFeedback{}
	clock := NewClockEngine(s, state, feedback, nil)
	router := NewScanRouter(d, s, clock, state, ui, feedback, NewFixedGenerator("scan-1"), nil)
	return router, state, ui, feedback
}

// advanceState moves the state's debounce clock forward.
func advanceState(state *AppState, d time.Duration) {
	base := state.now()
	state.now = func() time.Time { return base.Add(d) }
}
