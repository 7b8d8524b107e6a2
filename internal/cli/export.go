package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Randhum/TimeClock/internal/export"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Dir string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export raw entries as CSV",
		Long: `Export all active entries as semicolon-separated CSV, newest first.

Destination priority: --dir, TIME_CLOCK_EXPORT_PATH, the first mounted
USB drive, then ./exports.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", "", "export directory (overrides discovery)")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
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

	rows, err := st.EntriesForExport(context.Background())
	if err != nil {
		out.Error("EXPORT_FAILED", err.Error())
		return SilentExit(ExitFatal)
	}

	dir := opts.Dir
	if dir == "" {
		dir = cfg.ExportPath
	}
	if dir == "" {
		if dir, err = export.ResolveExportDir(true); err != nil {
			out.Error("EXPORT_FAILED", err.Error())
			return SilentExit(ExitFatal)
		}
	}

	name := fmt.Sprintf("timeclock_entries_%s.csv", time.Now().Format("20060102_150405"))
	path, err := export.WriteExport(export.RenderEntriesCSV(rows), dir, name)
	if err != nil {
		out.Error("EXPORT_FAILED", err.Error())
		return SilentExit(ExitFatal)
	}

	return out.Success(fmt.Sprintf("Exported %d entries to %s", len(rows), path))
}
