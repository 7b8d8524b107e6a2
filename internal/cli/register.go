package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Randhum/TimeClock/internal/model"
	"github.com/Randhum/TimeClock/internal/store"
)

// RegisterOptions holds flags for the register command.
type RegisterOptions struct {
	*RootOptions
	Name  string
	Tag   string
	Admin bool
}

// NewRegisterCommand creates the register command.
func NewRegisterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RegisterOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new employee",
		Long: `Register a new employee with a badge tag.

The very first employee must be an admin (--admin); registration of a
regular employee is rejected until one exists.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return registerEmployee(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "employee name (required)")
	cmd.Flags().StringVar(&opts.Tag, "tag", "", "badge tag, hex (required)")
	cmd.Flags().BoolVar(&opts.Admin, "admin", false, "grant admin rights")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("tag")

	return cmd
}

func registerEmployee(opts *RegisterOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	emp, err := st.CreateEmployee(context.Background(), opts.Name, opts.Tag, opts.Admin)
	if err != nil {
		code := "REGISTRATION_FAILED"
		switch {
		case errors.Is(err, store.ErrDuplicateTag):
			code = "DUPLICATE_TAG"
		case errors.Is(err, store.ErrFirstUserMustBeAdmin):
			code = "FIRST_USER_MUST_BE_ADMIN"
		case errors.Is(err, model.ErrInvalidInput):
			code = "INVALID_INPUT"
		}
		out.Error(code, err.Error())
		return SilentExit(ExitFatal)
	}

	role := "employee"
	if emp.IsAdmin {
		role = "admin"
	}
	return out.Success(fmt.Sprintf("Registered %s (%s) as %s, id %d", emp.Name, emp.RFIDTag, role, emp.ID))
}
