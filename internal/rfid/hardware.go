package rfid

import (
	"log/slog"
	"sync"
	"time"
)

// Worker timings. Poll stays at or under 100 ms so a badge tap is never
// missed; reconnect backoff starts at 250 ms and caps at 5 s.
const (
	defaultPollInterval = 100 * time.Millisecond
	reconnectInitial    = 250 * time.Millisecond
	reconnectMax        = 5 * time.Second

	successFlash   = 500 * time.Millisecond
	errorBlinks    = 3
	errorBlinkStep = 100 * time.Millisecond
)

// HardwareTagSource drives a physical reader from a background worker:
// reconnect loop, LED command processing, then polling.
//
// Immediate repeats are suppressed: the same tag on consecutive polls
// with no intervening null read emits only the first read.
type HardwareTagSource struct {
	onTag  OnTagFunc
	logger *slog.Logger

	dev          Device
	pollInterval time.Duration
	commands     chan ledCommand
	done         chan struct{}
	wg           sync.WaitGroup
	stopOnce     sync.Once
}

func newHardwareTagSource(dev Device, onTag OnTagFunc, logger *slog.Logger, opts ...Option) *HardwareTagSource {
	h := &HardwareTagSource{
		onTag:        onTag,
		logger:       logger,
		dev:          dev,
		pollInterval: defaultPollInterval,
		commands:     make(chan ledCommand, 16),
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Start launches the worker goroutine.
func (h *HardwareTagSource) Start() {
	h.wg.Add(1)
	go h.loop()
}

// Stop signals the worker and joins it. In-flight LED commands are
// dropped.
func (h *HardwareTagSource) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
	})
	h.wg.Wait()
}

// IndicateSuccess queues a green flash. Never blocks; drops the command
// when the queue is full.
func (h *HardwareTagSource) IndicateSuccess() {
	select {
	case h.commands <- ledSuccess:
	default:
	}
}

// IndicateError queues a red blink. Never blocks.
func (h *HardwareTagSource) IndicateError() {
	select {
	case h.commands <- ledError:
	default:
	}
}

func (h *HardwareTagSource) loop() {
	defer h.wg.Done()

	var (
		lastTag string
		backoff = reconnectInitial
	)

	for {
		select {
		case <-h.done:
			h.shutdown()
			return
		default:
		}

		// Connection phase: a nil device means the last poll failed.
		if h.dev == nil {
			dev, err := OpenDevice()
			if err != nil {
				h.sleep(backoff)
				backoff *= 2
				if backoff > reconnectMax {
					backoff = reconnectMax
				}
				continue
			}
			h.logger.Info("RFID reader connected")
			h.dev = dev
			backoff = reconnectInitial
		}

		// Command phase: drain queued LED feedback.
		h.drainCommands()
		if h.dev == nil {
			continue
		}

		// Polling phase.
		raw, bits, err := h.dev.ReadTag()
		if err != nil {
			h.logger.Error("RFID read failed, reconnecting", "error", err)
			h.dropDevice()
			continue
		}
		if bits > 0 && len(raw) > 0 {
			tag := tagFromBytes(raw)
			if tag != lastTag {
				lastTag = tag
				h.onTag(tag)
			}
		} else {
			lastTag = ""
		}

		h.sleep(h.pollInterval)
	}
}

func (h *HardwareTagSource) drainCommands() {
	for {
		select {
		case cmd := <-h.commands:
			if err := h.runCommand(cmd); err != nil {
				h.logger.Error("LED feedback failed, reconnecting", "error", err)
				h.dropDevice()
				return
			}
		default:
			return
		}
	}
}

func (h *HardwareTagSource) runCommand(cmd ledCommand) error {
	switch cmd {
	case ledSuccess:
		// Green flash, then back to the red ready state.
		if err := h.dev.SetLED(false, true); err != nil {
			return err
		}
		h.sleep(successFlash)
		return h.dev.SetLED(true, false)

	case ledError:
		for i := 0; i < errorBlinks; i++ {
			if err := h.dev.SetLED(false, false); err != nil {
				return err
			}
			h.sleep(errorBlinkStep)
			if err := h.dev.SetLED(true, false); err != nil {
				return err
			}
			h.sleep(errorBlinkStep)
		}
	}
	return nil
}

func (h *HardwareTagSource) dropDevice() {
	if h.dev != nil {
		h.dev.Close()
		h.dev = nil
	}
}

func (h *HardwareTagSource) shutdown() {
	if h.dev != nil {
		// Hand LED control back before letting go of the device.
		h.dev.SetLED(false, false)
		h.dev.Close()
		h.dev = nil
	}
}

// sleep waits without delaying shutdown.
func (h *HardwareTagSource) sleep(d time.Duration) {
	select {
	case <-h.done:
	case <-time.After(d):
	}
}
