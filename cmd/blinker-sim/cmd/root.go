package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/status-blinker/internal/logger"
	"github.com/oshokin/status-blinker/internal/service/driver"
	"github.com/oshokin/status-blinker/internal/sink"
	"github.com/oshokin/status-blinker/internal/version"
)

var (
	// ticks is the number of ticks to simulate.
	ticks int
	// scenarioPath to a YAML scenario.
	scenarioPath string
	// show renders LED changes on the console next to the trace.
	show bool
	// color enables terminal colours for --show.
	color bool
	// logLevel sets the log level.
	logLevel string

	// rootCmd represents the base command for the host simulation.
	rootCmd = &cobra.Command{
		Use:   "blinker-sim",
		Short: "Replay a condition scenario and print the LED decisions.",
		Long: `Runs the indicator on the host without timers or GPIO.

Each tick prints the timeslot, the red and green duty counters and the lit
LEDs. The built-in scenario sweeps through USB power, an active alarm, a
pending alarm with USB traffic and main power; --scenario loads one from YAML:

  name: tuned
  steps:
    - until: 100
      supply: usb
    - until: 150
      alarm: active`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			var leds sink.Sink
			if show {
				leds = sink.NewConsole(cmd.OutOrStdout(), color)
			}

			return driver.Simulate(ctx, &driver.SimulateOptions{
				Ticks:        ticks,
				ScenarioPath: scenarioPath,
				Output:       cmd.OutOrStdout(),
				Sink:         leds,
			})
		},
	}
)

// Execute runs the blinker-sim CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().IntVarP(&ticks, "ticks", "n", driver.DefaultSimulationTicks, "number of ticks to simulate")
	rootCmd.Flags().StringVarP(&scenarioPath, "scenario", "s", "", "path to a YAML scenario")
	rootCmd.Flags().BoolVar(&show, "show", false, "render LED changes next to the trace")
	rootCmd.Flags().BoolVar(&color, "color", false, "use terminal colours with --show")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "warn", "log level (debug, info, warn, error)")
}
