package sink

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/oshokin/status-blinker/internal/domain/indicator"
)

// Pins names the GPIO line for each colour, e.g. "GPIO17".
type Pins struct {
	Red   string
	Green string
	Blue  string
}

// errPinNotFound is returned when a pin name is unknown to the host.
var errPinNotFound = errors.New("gpio pin not found")

// GPIO drives one output line per colour.
type GPIO struct {
	// lines are ordered red, green, blue.
	lines [3]gpio.PinOut
	// activeLow inverts levels for common-anode wiring.
	activeLow bool
	// mu serialises writes to the lines.
	mu sync.Mutex
}

// OpenGPIO initialises the host drivers and resolves pins by name.
func OpenGPIO(pins Pins, activeLow bool) (*GPIO, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host drivers: %w", err)
	}

	names := [3]string{pins.Red, pins.Green, pins.Blue}

	var lines [3]gpio.PinOut

	for i, name := range names {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("%w: %q", errPinNotFound, name)
		}

		lines[i] = p
	}

	g := NewGPIO(lines[0], lines[1], lines[2], activeLow)

	// Start dark.
	if err := g.SetLEDs(context.Background(), indicator.Off); err != nil {
		return nil, err
	}

	return g, nil
}

// NewGPIO wraps already resolved output lines.
func NewGPIO(red, green, blue gpio.PinOut, activeLow bool) *GPIO {
	return &GPIO{
		lines:     [3]gpio.PinOut{red, green, blue},
		activeLow: activeLow,
	}
}

// SetLEDs implements Sink.
func (g *GPIO) SetLEDs(_ context.Context, mask indicator.LEDMask) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	bits := [3]indicator.LEDMask{indicator.Red, indicator.Green, indicator.Blue}

	var errs []error

	for i, line := range g.lines {
		level := gpio.Level(mask.Has(bits[i]))
		if g.activeLow {
			level = !level
		}

		if err := line.Out(level); err != nil {
			errs = append(errs, fmt.Errorf("set %s: %w", line, err))
		}
	}

	return errors.Join(errs...)
}

// Close turns every LED off.
func (g *GPIO) Close() error {
	return g.SetLEDs(context.Background(), indicator.Off)
}
