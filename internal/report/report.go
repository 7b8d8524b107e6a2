package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Randhum/TimeClock/internal/model"
	"github.com/Randhum/TimeClock/internal/store"
)

// Session is a paired (in, out) interval. An open session has no
// clock-out yet: ClockOut is nil and Duration is zero.
type Session struct {
	ClockIn    time.Time
	ClockOut   *time.Time
	Duration   time.Duration
	ClockInID  int64
	ClockOutID int64 // 0 while open
}

// Open reports whether the session is still missing its clock-out.
func (s Session) Open() bool {
	return s.ClockOut == nil
}

// DayReport collects the sessions of one local calendar day. Sessions
// belong to the day of their clock-in, which is what makes a
// midnight-crossing session count on its starting day.
type DayReport struct {
	Date           time.Time // midnight, local
	Sessions       []Session
	DailyTotal     time.Duration
	HasOpenSession bool
}

// Totals aggregates a report period.
type Totals struct {
	TotalDuration time.Duration
	DaysWithWork  int // days with at least one closed session
	AveragePerDay time.Duration
}

// Report is the working-time report for one employee over an inclusive
// local date range.
type Report struct {
	Employee model.Employee
	Start    time.Time // midnight, local
	End      time.Time // midnight, local
	Days     []DayReport
	Totals   Totals

	// Warnings records entries the pairing had to skip, such as an out
	// without a prior in.
	Warnings []string
}

// Build pairs the given active entries into sessions and aggregates
// them by day. start and end are inclusive local calendar dates; any
// time-of-day component is ignored.
//
// The pairing is FIFO across the entire range, not per day, which is
// what makes cross-midnight sessions work: an out always closes the
// oldest unmatched in. Given the same entries the result is identical
// across runs; nothing here reads the wall clock.
//
// Entries may extend past end (the store fetch does, to close sessions
// that start on the final day); sessions whose clock-in day falls
// outside [start, end] are discarded.
func Build(emp model.Employee, start, end time.Time, entries []model.TimeEntry) Report {
	start = dayOf(start)
	end = dayOf(end)

	r := Report{
		Employee: emp,
		Start:    start,
		End:      end,
	}

	// FIFO pairing over the whole range. The store hands entries over in
	// (timestamp ASC, id ASC) order already.
	var (
		sessions   []Session
		pendingIns []model.TimeEntry
	)
	for _, entry := range entries {
		switch entry.Action {
		case model.ActionIn:
			pendingIns = append(pendingIns, entry)
		case model.ActionOut:
			if len(pendingIns) == 0 {
				r.Warnings = append(r.Warnings, fmt.Sprintf(
					"clock out without prior clock in (entry %d at %s)",
					entry.ID, entry.Timestamp.Format("2006-01-02 15:04:05")))
				continue
			}
			in := pendingIns[0]
			pendingIns = pendingIns[1:]
			out := entry.Timestamp
			sessions = append(sessions, Session{
				ClockIn:    in.Timestamp,
				ClockOut:   &out,
				Duration:   out.Sub(in.Timestamp),
				ClockInID:  in.ID,
				ClockOutID: entry.ID,
			})
		}
	}
	// Remaining ins are open sessions on the day of their clock-in.
	for _, in := range pendingIns {
		sessions = append(sessions, Session{
			ClockIn:   in.Timestamp,
			ClockInID: in.ID,
		})
	}

	// Group by clock-in day, keeping only days inside the range.
	// Sessions arrive ordered by clock-in already (FIFO over a sorted
	// input), so per-day ordering is preserved.
	days := make(map[time.Time]*DayReport)
	var order []time.Time
	for _, session := range sessions {
		day := dayOf(session.ClockIn)
		if day.Before(start) || day.After(end) {
			continue
		}
		dr, ok := days[day]
		if !ok {
			dr = &DayReport{Date: day}
			days[day] = dr
			order = append(order, day)
		}
		dr.Sessions = append(dr.Sessions, session)
		if session.Open() {
			dr.HasOpenSession = true
		} else {
			dr.DailyTotal += session.Duration
		}
	}

	sort.Slice(order, func(i, j int) bool { return order[i].Before(order[j]) })
	for _, day := range order {
		dr := days[day]
		r.Days = append(r.Days, *dr)
		r.Totals.TotalDuration += dr.DailyTotal
		if dr.DailyTotal > 0 {
			r.Totals.DaysWithWork++
		}
	}
	if r.Totals.DaysWithWork > 0 {
		r.Totals.AveragePerDay = r.Totals.TotalDuration / time.Duration(r.Totals.DaysWithWork)
	}

	return r
}

// Generate fetches the employee's active entries and builds the report.
//
// The fetch window extends one day past end so an out shortly after
// midnight still closes a session that started on the final report day.
// Sessions attributed to days outside the range are discarded by Build.
func Generate(ctx context.Context, st *store.Store, emp model.Employee, start, end time.Time) (Report, error) {
	since := dayOf(start)
	until := dayOf(end).Add(48*time.Hour - time.Second)

	entries, err := st.ListEntries(ctx, emp.ID, since, until)
	if err != nil {
		return Report{}, fmt.Errorf("generate report: %w", err)
	}
	return Build(emp, start, end, entries), nil
}

// dayOf truncates to local midnight.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Local().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
