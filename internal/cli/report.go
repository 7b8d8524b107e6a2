package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/Randhum/TimeClock/internal/report"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	Name string
	Tag  string
	From string
	To   string
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a working-time report",
		Long: `Generate the working-time report for one employee over an inclusive
local date range. Sessions that cross midnight count on the day they
started; open sessions are listed but contribute nothing to the totals.

Without --from/--to the current month is reported.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "employee name (partial match)")
	cmd.Flags().StringVar(&opts.Tag, "tag", "", "employee badge tag")
	cmd.Flags().StringVar(&opts.From, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.To, "to", "", "end date, inclusive (YYYY-MM-DD)")

	return cmd
}

type reportJSON struct {
	Employee     string    `json:"employee"`
	Start        string    `json:"start"`
	End          string    `json:"end"`
	Days         []dayJSON `json:"days"`
	Total        string    `json:"total"`
	DaysWithWork int       `json:"days_with_work"`
	Average      string    `json:"average_per_day"`
	Warnings     []string  `json:"warnings,omitempty"`
}

type dayJSON struct {
	Date           string        `json:"date"`
	Sessions       []sessionJSON `json:"sessions"`
	DailyTotal     string        `json:"daily_total"`
	HasOpenSession bool          `json:"has_open_session"`
}

type sessionJSON struct {
	ClockIn  string `json:"clock_in"`
	ClockOut string `json:"clock_out,omitempty"`
	Duration string `json:"duration,omitempty"`
}

func runReport(opts *ReportOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, -1)
	if opts.From != "" {
		if from, err = parseDate(opts.From); err != nil {
			return WrapExitError(ExitConfigError, "invalid --from", err)
		}
	}
	if opts.To != "" {
		if to, err = parseDate(opts.To); err != nil {
			return WrapExitError(ExitConfigError, "invalid --to", err)
		}
	}

	emp, err := selectEmployee(ctx, st, opts.Name, opts.Tag)
	if err != nil {
		out.Error("EMPLOYEE_NOT_FOUND", err.Error())
		return SilentExit(ExitFatal)
	}

	r, err := report.Generate(ctx, st, emp, from, to)
	if err != nil {
		out.Error("REPORT_FAILED", err.Error())
		return SilentExit(ExitFatal)
	}

	if opts.Format == "json" {
		return out.Success(reportToJSON(r))
	}
	return out.Success(report.RenderText(r))
}

func reportToJSON(r report.Report) reportJSON {
	doc := reportJSON{
		Employee:     r.Employee.Name,
		Start:        r.Start.Format("2006-01-02"),
		End:          r.End.Format("2006-01-02"),
		Days:         []dayJSON{},
		Total:        report.FormatDuration(r.Totals.TotalDuration),
		DaysWithWork: r.Totals.DaysWithWork,
		Average:      report.FormatDuration(r.Totals.AveragePerDay),
		Warnings:     r.Warnings,
	}
	for _, day := range r.Days {
		dj := dayJSON{
			Date:           day.Date.Format("2006-01-02"),
			Sessions:       []sessionJSON{},
			DailyTotal:     report.FormatDuration(day.DailyTotal),
			HasOpenSession: day.HasOpenSession,
		}
		for _, s := range day.Sessions {
			sj := sessionJSON{ClockIn: s.ClockIn.Format(displayTimeLayout)}
			if !s.Open() {
				sj.ClockOut = s.ClockOut.Format(displayTimeLayout)
				sj.Duration = report.FormatDuration(s.Duration)
			}
			dj.Sessions = append(dj.Sessions, sj)
		}
		doc.Days = append(doc.Days, dj)
	}
	return doc
}
