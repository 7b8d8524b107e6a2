package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Randhum/TimeClock/internal/store"
)

// DeleteEntryOptions holds flags for the delete-entry command.
type DeleteEntryOptions struct {
	*RootOptions
	ID    int64
	Name  string
	Tag   string
	Force bool
}

// NewDeleteEntryCommand creates the delete-entry command.
func NewDeleteEntryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeleteEntryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "delete-entry",
		Short: "Soft-delete a clock entry",
		Long: `Soft-delete a clock entry by id and recalculate the employee's
remaining entries so in/out alternation holds.

--name or --tag verify the entry belongs to that employee before
deleting. The entry stays in the database for audit; it disappears from
every listing and report.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return deleteEntry(opts, cmd)
		},
	}

	cmd.Flags().Int64Var(&opts.ID, "id", 0, "entry id to delete (required)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "employee name for verification (partial match)")
	cmd.Flags().StringVar(&opts.Tag, "tag", "", "employee badge tag for verification")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "skip the confirmation prompt")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func deleteEntry(opts *DeleteEntryOptions, cmd *cobra.Command) error {
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

	if opts.Name != "" || opts.Tag != "" {
		emp, err := selectEmployee(ctx, st, opts.Name, opts.Tag)
		if err != nil {
			out.Error("EMPLOYEE_NOT_FOUND", err.Error())
			return SilentExit(ExitFatal)
		}
		entries, err := st.ListEntries(ctx, emp.ID, time.Time{}, time.Time{})
		if err != nil {
			out.Error("DELETE_FAILED", err.Error())
			return SilentExit(ExitFatal)
		}
		owned := false
		for _, e := range entries {
			if e.ID == opts.ID {
				owned = true
				break
			}
		}
		if !owned {
			out.Error("WRONG_EMPLOYEE",
				fmt.Sprintf("entry %d does not belong to %s (or is already deleted)", opts.ID, emp.Name))
			return SilentExit(ExitFatal)
		}
	}

	if !opts.Force && !confirm(cmd, fmt.Sprintf("Delete entry %d?", opts.ID)) {
		return out.Success("Aborted.")
	}

	count, err := st.SoftDeleteEntries(ctx, []int64{opts.ID})
	if err != nil && !errors.Is(err, store.ErrRecalculationFailed) {
		out.Error("DELETE_FAILED", err.Error())
		return SilentExit(ExitFatal)
	}
	if errors.Is(err, store.ErrRecalculationFailed) {
		// The delete committed; only the alternation repair failed.
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}
	if count == 0 {
		out.Error("NOT_FOUND", fmt.Sprintf("no active entry with id %d", opts.ID))
		return SilentExit(ExitFatal)
	}

	return out.Success(fmt.Sprintf("Deleted entry %d and recalculated actions.", opts.ID))
}

// confirm asks on stdin. Anything but y/yes declines.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
