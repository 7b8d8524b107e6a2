package cli

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Randhum/TimeClock/internal/engine"
	"github.com/Randhum/TimeClock/internal/logging"
	"github.com/Randhum/TimeClock/internal/rfid"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Mock bool
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the kiosk event loop",
		Long: `Start the TimeClock kiosk: the RFID worker, the scan router and the
single-threaded event loop that owns all state.

Without reader hardware the mock tag source is used; with --mock it is
forced. The mock reads tag ids from stdin, one per line, so the full
pipeline can be driven from a terminal:

  timeclock run --mock
  AAAA1111<enter>     # clocks Alice in`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKiosk(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Mock, "mock", false, "force the mock tag source")

	return cmd
}

func runKiosk(opts *RunOptions) error {
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return err
	}

	logger, closeLogs, err := logging.New(opts.Verbose, cfg.LogFile)
	if err != nil {
		return WrapExitError(ExitConfigError, "failed to open log sink", err)
	}
	defer closeLogs()
	slog.SetDefault(logger)

	logger.Info("opening database", "path", cfg.DatabasePath)
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	dispatcher := engine.NewDispatcher(logger)
	state := engine.NewAppState(dispatcher,
		cfg.ScanDebounce(), cfg.EmployeeTimeout(), cfg.PendingTimeout())

	// The tag source callback forwards to the router; the router needs
	// the source for LED feedback. Declare first, wire after.
	var router *engine.ScanRouter
	onTag := func(tag string) {
		router.OnTag(tag)
	}

	var source rfid.TagSource
	if opts.Mock {
		source = rfid.NewMockTagSource(onTag, logger)
	} else {
		source = rfid.New(onTag, logger, rfid.WithPollInterval(cfg.PollInterval()))
	}

	clockEngine := engine.NewClockEngine(st, state, source, logger)
	router = engine.NewScanRouter(dispatcher, st, clockEngine, state,
		engine.LogUI{Logger: logger}, source, nil, logger)

	// First-run policy: without an admin the UI adapter is forced into
	// registration. Headless, that means telling the operator.
	admins, err := st.GetAdminCount(context.Background())
	if err != nil {
		return WrapExitError(ExitFatal, "failed to query admin count", err)
	}
	if admins == 0 {
		logger.Warn("no admin registered; run 'timeclock register --admin' first")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	source.Start()
	defer source.Stop()

	if mock, ok := source.(*rfid.MockTagSource); ok {
		go feedStdinScans(ctx, mock, logger)
	}

	logger.Info("kiosk running", "mode", "timeclock")
	if err := dispatcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return WrapExitError(ExitFatal, "event loop failed", err)
	}
	logger.Info("kiosk stopped")
	return nil
}

// feedStdinScans turns stdin lines into simulated scans.
func feedStdinScans(ctx context.Context, mock *rfid.MockTagSource, logger *slog.Logger) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		mock.Simulate(line)
	}
	if err := scanner.Err(); err != nil {
		logger.Warn("stdin scan feed stopped", "error", err)
	}
}
