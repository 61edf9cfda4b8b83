package driver

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/oshokin/status-blinker/internal/logger"
	"github.com/oshokin/status-blinker/internal/sink"
	"github.com/oshokin/status-blinker/internal/source"
)

// DefaultSimulationTicks is how many ticks a simulation runs by default.
const DefaultSimulationTicks = 2000

// SimulateOptions controls a host simulation.
type SimulateOptions struct {
	// Ticks is the number of ticks to run.
	Ticks int
	// ScenarioPath loads a scenario from YAML instead of the default sweep.
	ScenarioPath string
	// Output receives the per-tick trace. Defaults to stdout.
	Output io.Writer
	// Sink additionally receives every mask when set.
	Sink sink.Sink
}

// Simulate replays a scenario without waiting between ticks and writes one
// trace line per tick:
//
//	timeslot: 0101 ltsc: 0099 000 R
//
// with the tick, the red and green duty counters after the evaluation and the
// lit LEDs.
func Simulate(ctx context.Context, opts *SimulateOptions) error {
	ctx = logger.WithName(ctx, "blinker-sim")

	scenario := source.DefaultScenario()

	if opts.ScenarioPath != "" {
		loaded, err := source.LoadScenario(opts.ScenarioPath)
		if err != nil {
			return fmt.Errorf("load scenario: %w", err)
		}

		scenario = loaded
	}

	ticks := opts.Ticks
	if ticks <= 0 {
		ticks = DefaultSimulationTicks
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	leds := opts.Sink
	if leds == nil {
		leds = sink.Discard
	}

	d := New(source.NewScenarioSource(scenario), leds)

	logger.DebugKV(ctx, "Simulation started", "scenario", scenario.Name, "ticks", ticks)

	for n := 0; n < ticks; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		frame, err := d.Step(ctx)
		if err != nil {
			return fmt.Errorf("tick %d: %w", frame.Tick, err)
		}

		_, err = fmt.Fprintf(out, "timeslot: %04d ltsc: %04d %03d %s\n",
			frame.Tick, frame.Counters.Red, frame.Counters.Green, frame.Mask.Letters())
		if err != nil {
			return fmt.Errorf("write trace: %w", err)
		}
	}

	logger.DebugKV(ctx, "Simulation finished", "scenario", scenario.Name, "ticks", ticks)

	return nil
}
