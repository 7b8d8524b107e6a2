// Package rfid abstracts the badge reader. A TagSource runs a
// background worker that polls for tag reads, normalises them to
// uppercase hex and hands them to a callback; LED feedback goes the
// other way through a fire-and-forget command queue.
package rfid

import (
	"log/slog"
	"time"
)

// OnTagFunc receives normalised tag ids. It is invoked from the worker
// goroutine, not the event loop; implementations must be safe to call
// from a foreign thread and are expected to forward to the dispatcher.
type OnTagFunc func(tagID string)

// TagSource is the reader contract: a background worker emitting
// normalised tag ids plus best-effort LED feedback. Neither Indicate
// call blocks the caller.
type TagSource interface {
	Start()
	Stop()
	IndicateSuccess()
	IndicateError()
}

// ledCommand is a queued feedback request.
type ledCommand int

const (
	ledSuccess ledCommand = iota + 1
	ledError
)

// Option configures a tag source.
type Option func(*HardwareTagSource)

// WithPollInterval overrides the reader poll interval. Values above the
// default are clamped so a badge tap is never missed.
func WithPollInterval(d time.Duration) Option {
	return func(h *HardwareTagSource) {
		if d > 0 && d <= defaultPollInterval {
			h.pollInterval = d
		}
	}
}

// New picks the best available tag source: the hardware reader when the
// USB-HID device opens, otherwise the mock. The returned source is not
// started.
func New(onTag OnTagFunc, logger *slog.Logger, opts ...Option) TagSource {
	if logger == nil {
		logger = slog.Default()
	}
	dev, err := OpenDevice()
	if err != nil {
		logger.Warn("no RFID reader available, using mock", "error", err)
		return NewMockTagSource(onTag, logger)
	}
	return newHardwareTagSource(dev, onTag, logger, opts...)
}
