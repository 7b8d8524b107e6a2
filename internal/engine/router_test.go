package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_TimeclockScanClocksEmployee(t *testing.T) {
	s, _, alice := newTestStore(t)
	router, _, ui, feedback := newTestRouter(t, s)
	ctx := context.Background()

	router.handleScan(ctx, "AAAA1111")

	require.Len(t, ui.greetings, 1)
	assert.True(t, ui.greetings[0].Success)
	assert.Equal(t, alice.ID, ui.greetings[0].Employee.ID)
	assert.Equal(t, 1, feedback.successes)

	entries, err := s.ListEntries(ctx, alice.ID, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRouter_DebounceDropsSecondScan(t *testing.T) {
	s, _, alice := newTestStore(t)
	router, state, ui, _ := newTestRouter(t, s)
	ctx := context.Background()

	// Two scans 400 ms apart: one entry.
	router.handleScan(ctx, "AAAA1111")
	advanceState(state, 400*time.Millisecond)
	router.handleScan(ctx, "AAAA1111")

	entries, err := s.ListEntries(ctx, alice.ID, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, entries, 1, "debounce must drop the repeat")
	assert.Len(t, ui.greetings, 1)

	// Past the window the badge clocks again.
	advanceState(state, 2*time.Second)
	router.handleScan(ctx, "AAAA1111")

	entries, err = s.ListEntries(ctx, alice.ID, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRouter_LowercaseScanNormalises(t *testing.T) {
	s, _, alice := newTestStore(t)
	router, _, ui, _ := newTestRouter(t, s)
	ctx := context.Background()

	router.handleScan(ctx, "aaaa1111")

	require.Len(t, ui.greetings, 1)
	assert.Equal(t, alice.ID, ui.greetings[0].Employee.ID)
}

func TestRouter_UnknownTagShowsError(t *testing.T) {
	s, _, _ := newTestStore(t)
	router, _, ui, feedback := newTestRouter(t, s)

	router.handleScan(context.Background(), "DEAD0000")

	assert.Len(t, ui.greetings, 0)
	require.Len(t, ui.errors, 1)
	assert.Contains(t, ui.errors[0], "Unknown Badge")
	assert.Equal(t, 1, feedback.errors)
}

func TestRouter_MalformedTagRejected(t *testing.T) {
	s, _, _ := newTestStore(t)
	router, _, ui, feedback := newTestRouter(t, s)

	router.handleScan(context.Background(), "XYZ") // too short, non-hex

	assert.Empty(t, ui.errors, "malformed reads are dropped without a popup")
	assert.Equal(t, 1, feedback.errors)
}

func TestRouter_AdminBadgeSwitchesToAdminMode(t *testing.T) {
	s, _, _ := newTestStore(t)
	router, _, ui, _ := newTestRouter(t, s)

	router.handleScan(context.Background(), "AD000001")

	assert.Equal(t, ModeAdmin, router.Mode())
	assert.Equal(t, []Mode{ModeAdmin}, ui.modes)
	// No clock entry for the admin switch.
	assert.Empty(t, ui.greetings)
}

func TestRouter_RegisterMode(t *testing.T) {
	s, _, _ := newTestStore(t)
	router, state, ui, feedback := newTestRouter(t, s)
	ctx := context.Background()
	router.SetMode(ModeRegister)

	// Known badge: rejected.
	router.handleScan(ctx, "AAAA1111")
	require.Len(t, ui.errors, 1)
	assert.Contains(t, ui.errors[0], "Alice")
	assert.Equal(t, 1, feedback.errors)

	// Fresh badge: captured.
	advanceState(state, 2*time.Second)
	router.handleScan(ctx, "FEED0001")
	assert.Equal(t, []string{"FEED0001"}, ui.captured)
	assert.Equal(t, 1, feedback.successes)
}

func TestRouter_IdentifyMode(t *testing.T) {
	s, _, alice := newTestStore(t)
	router, state, ui, _ := newTestRouter(t, s)
	ctx := context.Background()
	router.SetMode(ModeIdentify)

	router.handleScan(ctx, "AAAA1111")
	require.Len(t, ui.identity, 1)
	assert.Equal(t, alice.ID, ui.identity[0].ID)

	// Identify is read-only: no entries written.
	entries, err := s.ListEntries(ctx, alice.ID, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, entries)

	advanceState(state, 2*time.Second)
	router.handleScan(ctx, "DEAD0000")
	assert.Len(t, ui.errors, 1)
}

func TestRouter_AdminModeEmployeeBadgeShowsInfo(t *testing.T) {
	s, _, alice := newTestStore(t)
	router, _, ui, _ := newTestRouter(t, s)
	ctx := context.Background()
	router.SetMode(ModeAdmin)

	router.handleScan(ctx, "AAAA1111")

	require.Len(t, ui.infos, 1)
	assert.Contains(t, ui.infos[0], "timeclock mode")
	// No clocking happened.
	entries, err := s.ListEntries(ctx, alice.ID, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRouter_AdminModeAdminBadgeStays(t *testing.T) {
	s, _, _ := newTestStore(t)
	router, _, ui, _ := newTestRouter(t, s)
	router.SetMode(ModeAdmin)

	router.handleScan(context.Background(), "AD000001")

	assert.Equal(t, ModeAdmin, router.Mode())
	assert.Empty(t, ui.errors)
	assert.Empty(t, ui.infos)
}

func TestRouter_PendingIdentificationMatch(t *testing.T) {
	s, _, alice := newTestStore(t)
	router, state, ui, feedback := newTestRouter(t, s)

	router.SetMode(ModeAdmin)
	router.BeginEntryEdit(alice)
	assert.Equal(t, ModeEntryEditPending, router.Mode())
	require.NotNil(t, state.Pending())

	router.handleScan(context.Background(), "AAAA1111")

	require.Len(t, ui.unlocked, 1)
	assert.Equal(t, alice.ID, ui.unlocked[0].ID)
	assert.Nil(t, state.Pending())
	assert.Equal(t, ModeAdmin, router.Mode())
	assert.Equal(t, 1, feedback.successes)
}

func TestRouter_PendingIdentificationMismatch(t *testing.T) {
	s, _, alice := newTestStore(t)
	router, state, ui, feedback := newTestRouter(t, s)

	router.SetMode(ModeAdmin)
	router.BeginEntryEdit(alice)

	// The admin's own badge is the wrong badge here.
	router.handleScan(context.Background(), "AD000001")

	assert.Empty(t, ui.unlocked)
	require.Len(t, ui.errors, 1)
	assert.Contains(t, ui.errors[0], "Alice")
	assert.Equal(t, 1, feedback.errors)
	// The request stays armed for another attempt.
	assert.NotNil(t, state.Pending())
	assert.Equal(t, ModeEntryEditPending, router.Mode())
}

func TestRouter_OnTagForwardsToDispatcher(t *testing.T) {
	s, _, alice := newTestStore(t)

	d := NewDispatcher(nil)
	state := NewAppState(d, DefaultScanDebounce, DefaultEmployeeTimeout, DefaultPendingTimeout)
	ui := &recordingUI{}
	feedback := &fakeFeedback{}
	clock := NewClockEngine(s, state, feedback, nil)
	router := NewScanRouter(d, s, clock, state, ui, feedback, nil, nil)

	done := make(chan error, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { done <- d.Run(ctx) }()

	// Called from a foreign goroutine, like the RFID worker.
	router.OnTag("AAAA1111")

	require.Eventually(t, func() bool {
		entries, err := s.ListEntries(context.Background(), alice.ID, time.Time{}, time.Time{})
		return err == nil && len(entries) == 1
	}, 2*time.Second, 10*time.Millisecond)

	d.Stop()
	<-done
}
