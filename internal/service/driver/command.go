package driver

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/oshokin/status-blinker/internal/config"
	"github.com/oshokin/status-blinker/internal/logger"
	"github.com/oshokin/status-blinker/internal/service/guard"
	"github.com/oshokin/status-blinker/internal/sink"
	"github.com/oshokin/status-blinker/internal/source"
)

// Options controls the live driver process.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// RequireConfig fails when ConfigPath does not exist instead of
	// falling back to defaults.
	RequireConfig bool
	// LogLevel overrides the configured log level when set.
	LogLevel string
	// Force skips the single instance check.
	Force bool
	// Sink replaces the configured LED backend when set.
	Sink sink.Sink
}

// errUnknownLogLevel indicates an unparsable level override.
var errUnknownLogLevel = errors.New("unknown log level")

// Run loads configuration, wires the condition sources and the LED sink and
// drives the LEDs until ctx is canceled.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "blinker")

	cfg, err := loadConfig(ctx, opts)
	if err != nil {
		return err
	}

	if err = applyLogLevel(cfg, opts.LogLevel); err != nil {
		return err
	}

	// Two drivers on the same LEDs would overwrite each other every tick.
	if !opts.Force {
		if err = guard.EnsureSingleInstance(ctx); err != nil {
			return err
		}
	}

	file := source.NewFile(cfg.Conditions.File)

	var src source.Source = file
	if cfg.Conditions.SupplyProbe != "" {
		src = source.WithSupply(file, source.NewSupplyProbe(cfg.Conditions.SupplyProbe))
	}

	out, err := buildSink(cfg, opts.Sink)
	if err != nil {
		return err
	}

	// Leave the LEDs dark on exit.
	defer func() {
		if closeErr := sink.Close(out); closeErr != nil {
			logger.ErrorKV(ctx, "Failed to release LEDs", "error", closeErr)
		}
	}()

	d := New(src, out)

	logger.InfoKV(ctx, "Driver started",
		"tick_period", cfg.TickPeriod.String(),
		"backend", cfg.LEDs.Backend,
		"conditions_file", file.Path(),
		"supply_probe", cfg.Conditions.SupplyProbe,
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return file.Watch(gctx, cfg.Conditions.RefreshInterval)
	})

	g.Go(func() error {
		return d.Run(gctx, cfg.TickPeriod)
	})

	if err = g.Wait(); err != nil {
		return fmt.Errorf("run driver: %w", err)
	}

	logger.Info(ctx, "Driver stopped")

	return nil
}

// loadConfig reads settings, falling back to defaults for a missing
// optional file.
func loadConfig(ctx context.Context, opts *Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)

	switch {
	case err == nil:
		return cfg, nil
	case errors.Is(err, os.ErrNotExist) && !opts.RequireConfig:
		logger.WarnKV(ctx, "Settings file not found, using defaults", "config", opts.ConfigPath)

		return config.Default(), nil
	default:
		return nil, fmt.Errorf("load settings: %w", err)
	}
}

// applyLogLevel sets the global level from the override or the settings.
func applyLogLevel(cfg *config.Config, override string) error {
	name := cfg.LogLevel
	if override != "" {
		name = override
	}

	level, ok := logger.ParseLogLevel(name)
	if !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, name)
	}

	logger.SetLevel(level)

	return nil
}

// buildSink opens the configured LED backend unless override is set.
//
//nolint:ireturn // The backend is chosen at runtime.
func buildSink(cfg *config.Config, override sink.Sink) (sink.Sink, error) {
	if override != nil {
		return override, nil
	}

	switch cfg.LEDs.Backend {
	case config.BackendGPIO:
		pins := sink.Pins{
			Red:   cfg.LEDs.Red,
			Green: cfg.LEDs.Green,
			Blue:  cfg.LEDs.Blue,
		}

		g, err := sink.OpenGPIO(pins, cfg.LEDs.ActiveLow)
		if err != nil {
			return nil, fmt.Errorf("open GPIO LEDs: %w", err)
		}

		return g, nil
	case config.BackendLog:
		return sink.NewLog(), nil
	default:
		return sink.NewConsole(os.Stdout, cfg.LEDs.Color), nil
	}
}
