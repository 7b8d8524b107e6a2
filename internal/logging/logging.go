// Package logging builds the process logger: slog text output on
// stderr, optionally teed into a daily-rotated log file for the kiosk,
// where nobody reads a terminal.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
)

const (
	rotationInterval = 24 * time.Hour
	retention        = 14 * 24 * time.Hour
)

// New constructs the logger. verbose switches to debug level. When
// logFile is non-empty, output is additionally written to a daily
// rotated file next to it; the returned closer flushes and closes that
// sink.
func New(verbose bool, logFile string) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	closer := func() error { return nil }

	if logFile != "" {
		rotator, err := rotatelogs.New(
			logFile+".%Y%m%d",
			rotatelogs.WithLinkName(logFile),
			rotatelogs.WithRotationTime(rotationInterval),
			rotatelogs.WithMaxAge(retention),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file %s: %w", logFile, err)
		}
		w = io.MultiWriter(os.Stderr, rotator)
		closer = rotator.Close
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler), closer, nil
}
