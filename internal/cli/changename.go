package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Randhum/TimeClock/internal/model"
)

// ChangeNameOptions holds flags for the change-employee-name command.
type ChangeNameOptions struct {
	*RootOptions
	Name    string
	Tag     string
	NewName string
}

// NewChangeEmployeeNameCommand creates the change-employee-name command.
func NewChangeEmployeeNameCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ChangeNameOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "change-employee-name",
		Short:         "Change an employee's name",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return changeEmployeeName(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "current employee name (partial match)")
	cmd.Flags().StringVar(&opts.Tag, "tag", "", "employee badge tag")
	cmd.Flags().StringVar(&opts.NewName, "new-name", "", "new employee name (required)")
	_ = cmd.MarkFlagRequired("new-name")

	return cmd
}

func changeEmployeeName(opts *ChangeNameOptions, cmd *cobra.Command) error {
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

	emp, err := selectEmployee(ctx, st, opts.Name, opts.Tag)
	if err != nil {
		out.Error("EMPLOYEE_NOT_FOUND", err.Error())
		return SilentExit(ExitFatal)
	}

	updated, err := st.RenameEmployee(ctx, emp.ID, opts.NewName)
	if err != nil {
		code := "RENAME_FAILED"
		if errors.Is(err, model.ErrInvalidInput) {
			code = "INVALID_INPUT"
		}
		out.Error(code, err.Error())
		return SilentExit(ExitFatal)
	}

	return out.Success(fmt.Sprintf("Renamed %q to %q (id %d)", emp.Name, updated.Name, updated.ID))
}
