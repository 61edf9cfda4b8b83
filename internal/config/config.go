package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/status-blinker/internal/logger"
)

// Backend names an LED output implementation.
type Backend string

const (
	// BackendGPIO drives real LEDs through GPIO lines.
	BackendGPIO Backend = "gpio"
	// BackendConsole prints LED changes to stdout.
	BackendConsole Backend = "console"
	// BackendLog writes LED changes to the log.
	BackendLog Backend = "log"
)

// Config holds the driver settings.
type Config struct {
	// TickPeriod is the time between two evaluations.
	TickPeriod time.Duration `yaml:"tick_period"`
	// LogLevel is the minimum log level.
	LogLevel string `yaml:"log_level"`
	// Conditions configures where device conditions come from.
	Conditions Conditions `yaml:"conditions"`
	// LEDs configures the LED output.
	LEDs LEDs `yaml:"leds"`
}

// Conditions configures the condition sources.
type Conditions struct {
	// File is a YAML file holding alarm, supply and usb_activity.
	File string `yaml:"file"`
	// RefreshInterval is how often File is re-read.
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	// SupplyProbe is a power_supply class directory that overrides the
	// supply field when set, e.g. /sys/class/power_supply.
	SupplyProbe string `yaml:"supply_probe"`
}

// LEDs configures the LED output.
type LEDs struct {
	// Backend selects the output implementation.
	Backend Backend `yaml:"backend"`
	// Red, Green and Blue are GPIO pin names for the gpio backend.
	Red   string `yaml:"red"`
	Green string `yaml:"green"`
	Blue  string `yaml:"blue"`
	// ActiveLow inverts the GPIO levels for common-anode LEDs.
	ActiveLow bool `yaml:"active_low"`
	// Color renders console output with terminal colours.
	Color bool `yaml:"color"`
}

const (
	// DefaultConfigFilename is the default filename for driver settings.
	DefaultConfigFilename = "blinker-settings.yaml"

	// DefaultConditionsFilename is the default YAML conditions file.
	DefaultConditionsFilename = "blinker-conditions.yaml"

	// DefaultTickPeriod is the default time between evaluations.
	DefaultTickPeriod = 10 * time.Millisecond

	// DefaultRefreshInterval is the default conditions file poll interval.
	DefaultRefreshInterval = 250 * time.Millisecond

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownBackend is returned for an unsupported LED backend.
	errUnknownBackend = errors.New("unknown LED backend")
	// errPinsRequired is returned when the gpio backend lacks pin names.
	errPinsRequired = errors.New("gpio backend needs red, green and blue pins")
	// errUnknownLogLevel is returned when log_level cannot be parsed.
	errUnknownLogLevel = errors.New("unknown log level")
)

// Default returns settings that run without any file or hardware.
func Default() *Config {
	return &Config{
		TickPeriod: DefaultTickPeriod,
		LogLevel:   "info",
		Conditions: Conditions{
			File:            DefaultConditionsFilename,
			RefreshInterval: DefaultRefreshInterval,
		},
		LEDs: LEDs{
			Backend: BackendConsole,
		},
	}
}

// Load reads configuration from the provided path and validates it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the settings and fills in defaults for empty fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.TickPeriod <= 0 {
		cfg.TickPeriod = DefaultTickPeriod
	}

	if cfg.Conditions.RefreshInterval <= 0 {
		cfg.Conditions.RefreshInterval = DefaultRefreshInterval
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, cfg.LogLevel)
	}

	cfg.LEDs.Backend = Backend(strings.ToLower(strings.TrimSpace(string(cfg.LEDs.Backend))))

	switch cfg.LEDs.Backend {
	case "":
		cfg.LEDs.Backend = BackendConsole
	case BackendConsole, BackendLog:
	case BackendGPIO:
		if cfg.LEDs.Red == "" || cfg.LEDs.Green == "" || cfg.LEDs.Blue == "" {
			return errPinsRequired
		}
	default:
		return fmt.Errorf("%w: %q", errUnknownBackend, cfg.LEDs.Backend)
	}

	return nil
}
