package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Randhum/TimeClock/internal/store"
)

// InsertEntryOptions holds flags for the insert-entry command.
type InsertEntryOptions struct {
	*RootOptions
	Name string
	Tag  string
	Time string
}

// NewInsertEntryCommand creates the insert-entry command.
func NewInsertEntryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InsertEntryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "insert-entry",
		Short: "Insert a clock entry manually",
		Long: `Insert a clock entry for an employee at an arbitrary timestamp.

The action (in/out) follows from the entry's chronological position;
entries after the insertion point are recalculated to keep the in/out
alternation intact. Without --time the current time is used.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return insertEntry(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "employee name (partial match)")
	cmd.Flags().StringVar(&opts.Tag, "tag", "", "employee badge tag")
	cmd.Flags().StringVar(&opts.Time, "time", "", `timestamp, e.g. "2024-01-15 14:30:00"`)

	return cmd
}

func insertEntry(opts *InsertEntryOptions, cmd *cobra.Command) error {
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

	ts := time.Now()
	if opts.Time != "" {
		if ts, err = parseTimestamp(opts.Time); err != nil {
			return WrapExitError(ExitConfigError, "invalid --time", err)
		}
	}

	emp, err := selectEmployee(ctx, st, opts.Name, opts.Tag)
	if err != nil {
		out.Error("EMPLOYEE_NOT_FOUND", err.Error())
		return SilentExit(ExitFatal)
	}

	entry, err := st.InsertManualEntry(ctx, emp, ts)
	if err != nil && !errors.Is(err, store.ErrRecalculationFailed) {
		out.Error("INSERT_FAILED", err.Error())
		return SilentExit(ExitFatal)
	}
	if errors.Is(err, store.ErrRecalculationFailed) {
		// The insert committed; only the alternation repair failed.
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}

	return out.Success(fmt.Sprintf("Inserted entry %d: %s %s @ %s",
		entry.ID, emp.Name, strings.ToUpper(string(entry.Action)),
		entry.Timestamp.Format(displayTimeLayout)))
}
