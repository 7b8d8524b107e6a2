package report

import (
	"fmt"
	"strings"
	"time"
)

// FormatDuration renders a duration as H:MM (8:00, 0:30, 12:05).
func FormatDuration(d time.Duration) string {
	total := int(d / time.Minute)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// RenderText renders the report as the CLI's plain-text table.
func RenderText(r Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Working time report: %s\n", r.Employee.Name)
	fmt.Fprintf(&b, "Period: %s .. %s\n\n",
		r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))

	if len(r.Days) == 0 {
		b.WriteString("No sessions in this period.\n")
	}

	for _, day := range r.Days {
		fmt.Fprintf(&b, "%s\n", day.Date.Format("2006-01-02 (Mon)"))
		for _, session := range day.Sessions {
			if session.Open() {
				fmt.Fprintf(&b, "  %s - (open)\n", session.ClockIn.Format("15:04"))
				continue
			}
			fmt.Fprintf(&b, "  %s - %s  %s\n",
				session.ClockIn.Format("15:04"),
				session.ClockOut.Format("15:04"),
				FormatDuration(session.Duration))
		}
		fmt.Fprintf(&b, "  Daily total: %s\n", FormatDuration(day.DailyTotal))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Total:           %s\n", FormatDuration(r.Totals.TotalDuration))
	fmt.Fprintf(&b, "Days with work:  %d\n", r.Totals.DaysWithWork)
	fmt.Fprintf(&b, "Average per day: %s\n", FormatDuration(r.Totals.AveragePerDay))

	for _, warning := range r.Warnings {
		fmt.Fprintf(&b, "Warning: %s\n", warning)
	}

	return b.String()
}
