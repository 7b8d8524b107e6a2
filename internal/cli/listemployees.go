package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// ListEmployeesOptions holds flags for the list-employees command.
type ListEmployeesOptions struct {
	*RootOptions
	All bool
}

// NewListEmployeesCommand creates the list-employees command.
func NewListEmployeesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListEmployeesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "list-employees",
		Short:         "List employees",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listEmployees(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.All, "all", false, "include retired employees")

	return cmd
}

type employeeRow struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Tag     string `json:"rfid_tag"`
	IsAdmin bool   `json:"is_admin"`
	Active  bool   `json:"active"`
}

func listEmployees(opts *ListEmployeesOptions, cmd *cobra.Command) error {
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

	employees, err := st.ListEmployees(context.Background(), opts.All)
	if err != nil {
		out.Error("LIST_FAILED", err.Error())
		return SilentExit(ExitFatal)
	}

	if opts.Format == "json" {
		rows := make([]employeeRow, 0, len(employees))
		for _, e := range employees {
			rows = append(rows, employeeRow{
				ID: e.ID, Name: e.Name, Tag: e.RFIDTag,
				IsAdmin: e.IsAdmin, Active: e.Active,
			})
		}
		return out.Success(rows)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-5s %-30s %-12s %-6s %s\n", "ID", "NAME", "TAG", "ADMIN", "ACTIVE")
	for _, e := range employees {
		fmt.Fprintf(&b, "%-5d %-30s %-12s %-6t %t\n",
			e.ID, e.Name, e.RFIDTag, e.IsAdmin, e.Active)
	}
	return out.Success(strings.TrimSuffix(b.String(), "\n"))
}
