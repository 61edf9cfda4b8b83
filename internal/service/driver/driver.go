package driver

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oshokin/status-blinker/internal/domain/device"
	"github.com/oshokin/status-blinker/internal/domain/indicator"
	"github.com/oshokin/status-blinker/internal/logger"
	"github.com/oshokin/status-blinker/internal/sink"
	"github.com/oshokin/status-blinker/internal/source"
)

// Frame describes one evaluated tick.
type Frame struct {
	// Tick is the zero-based tick index.
	Tick int
	// State is the snapshot the FSM evaluated.
	State device.State
	// Mask is the LED output for this tick.
	Mask indicator.LEDMask
	// Counters are the duty counters after the evaluation.
	Counters indicator.DutyCounters
}

// Driver connects a condition source, the indicator FSM and an LED sink.
type Driver struct {
	// fsm decides the LEDs.
	fsm *indicator.FSM
	// source provides the conditions.
	source source.Source
	// sink receives the LEDs.
	sink sink.Sink
	// tick is the index of the next tick.
	tick int
	// last is the last state read successfully.
	last device.State
	// mu keeps evaluations from overlapping.
	mu sync.Mutex
}

// New creates a Driver with idle counters.
func New(src source.Source, out sink.Sink) *Driver {
	return &Driver{
		fsm:    indicator.NewFSM(),
		source: src,
		sink:   out,
		last:   device.Default(),
	}
}

// Step evaluates a single tick.
//
// If the source fails the FSM still runs on the last good state, so the
// duty counters keep counting; the error is returned with the frame.
func (d *Driver) Step(ctx context.Context) (Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var errs []error

	state, err := d.source.Snapshot(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("snapshot conditions: %w", err))
		state = d.last
	}

	d.last = state

	frame := Frame{
		Tick:  d.tick,
		State: state,
		Mask:  d.fsm.Evaluate(state),
	}
	frame.Counters = d.fsm.Counters()

	d.tick++

	if err := d.sink.SetLEDs(ctx, frame.Mask); err != nil {
		errs = append(errs, fmt.Errorf("set LEDs: %w", err))
	}

	return frame, errors.Join(errs...)
}

// Run steps once per period until ctx is canceled.
// Tick failures are logged and do not stop the loop.
func (d *Driver) Run(ctx context.Context, period time.Duration) error {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	var (
		last    indicator.LEDMask
		started bool
	)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			frame, err := d.Step(ctx)
			if err != nil {
				logger.ErrorKV(ctx, "Tick failed", "tick", frame.Tick, "error", err)
			}

			if started && frame.Mask == last {
				continue
			}

			last, started = frame.Mask, true

			logger.DebugKV(ctx, "Mask changed",
				"tick", frame.Tick,
				"mask", frame.Mask.String(),
				"alarm", frame.State.Alarm,
				"supply", frame.State.Supply,
				"usb_activity", frame.State.USBActivity,
				"red", frame.Counters.Red,
				"green", frame.Counters.Green,
			)
		}
	}
}
