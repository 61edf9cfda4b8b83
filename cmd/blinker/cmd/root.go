package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/status-blinker/internal/config"
	"github.com/oshokin/status-blinker/internal/logger"
	"github.com/oshokin/status-blinker/internal/service/driver"
	"github.com/oshokin/status-blinker/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// logLevel overrides the configured log level.
	logLevel string
	// force skips the single instance check.
	force bool

	// rootCmd represents the base command for driving the status LEDs.
	rootCmd = &cobra.Command{
		Use:   "blinker",
		Short: "Drive the red, green and blue status LEDs.",
		Long: `Evaluates the device conditions once per tick and lights the status LEDs.

Red shows alarms (short for active, long for pending), green shows USB activity
or USB power, blue shows that the device runs off main power.

Conditions are read from a YAML file (alarm, supply, usb_activity) that is
polled for changes; the supply can instead come from the power_supply class.
LEDs go to GPIO lines, the console or the log depending on the settings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			defer logger.Sync()

			return driver.Run(ctx, &driver.Options{
				ConfigPath:    configPath,
				RequireConfig: cmd.Flags().Changed("config"),
				LogLevel:      logLevel,
				Force:         force,
			})
		},
	}
)

// Execute runs the blinker CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "override log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVarP(&force, "force", "f", false, "start even if another instance is running")
}
