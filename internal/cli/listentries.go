package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Randhum/TimeClock/internal/model"
)

// ListEntriesOptions holds flags for the list-entries command.
type ListEntriesOptions struct {
	*RootOptions
	Name  string
	Tag   string
	All   bool
	Since string
	Until string
}

// NewListEntriesCommand creates the list-entries command.
func NewListEntriesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListEntriesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list-entries",
		Short: "List clock entries",
		Long: `List active clock entries for one employee (--name or --tag) or,
with --all, for every active employee.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listEntries(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "employee name (partial match)")
	cmd.Flags().StringVar(&opts.Tag, "tag", "", "employee badge tag")
	cmd.Flags().BoolVar(&opts.All, "all", false, "list entries for all employees")
	cmd.Flags().StringVar(&opts.Since, "since", "", "start of range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Until, "until", "", "end of range, inclusive (YYYY-MM-DD)")

	return cmd
}

type entryRow struct {
	ID        int64  `json:"id"`
	Employee  string `json:"employee"`
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
}

func listEntries(opts *ListEntriesOptions, cmd *cobra.Command) error {
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

	var since, until time.Time
	if opts.Since != "" {
		if since, err = parseDate(opts.Since); err != nil {
			return WrapExitError(ExitConfigError, "invalid --since", err)
		}
	}
	if opts.Until != "" {
		if until, err = parseDate(opts.Until); err != nil {
			return WrapExitError(ExitConfigError, "invalid --until", err)
		}
		until = until.Add(24*time.Hour - time.Second)
	}

	var employees []model.Employee
	if opts.All {
		employees, err = st.ListEmployees(ctx, false)
		if err != nil {
			out.Error("LIST_FAILED", err.Error())
			return SilentExit(ExitFatal)
		}
	} else {
		emp, err := selectEmployee(ctx, st, opts.Name, opts.Tag)
		if err != nil {
			out.Error("EMPLOYEE_NOT_FOUND", err.Error())
			return SilentExit(ExitFatal)
		}
		employees = []model.Employee{emp}
	}

	var rows []entryRow
	for _, emp := range employees {
		entries, err := st.ListEntries(ctx, emp.ID, since, until)
		if err != nil {
			out.Error("LIST_FAILED", err.Error())
			return SilentExit(ExitFatal)
		}
		for _, e := range entries {
			rows = append(rows, entryRow{
				ID:        e.ID,
				Employee:  emp.Name,
				Timestamp: e.Timestamp.Format(displayTimeLayout),
				Action:    strings.ToUpper(string(e.Action)),
			})
		}
	}

	if opts.Format == "json" {
		return out.Success(rows)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-6s %-30s %-20s %s\n", "ID", "EMPLOYEE", "TIMESTAMP", "ACTION")
	for _, r := range rows {
		fmt.Fprintf(&b, "%-6d %-30s %-20s %s\n", r.ID, r.Employee, r.Timestamp, r.Action)
	}
	return out.Success(strings.TrimSuffix(b.String(), "\n"))
}
