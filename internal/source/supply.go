package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oshokin/status-blinker/internal/domain/device"
)

// DefaultPowerSupplyClass is where Linux exposes power supplies.
const DefaultPowerSupplyClass = "/sys/class/power_supply"

// SupplyProbe tells main power from USB power using the power_supply class.
//
// Any online supply of type Mains means main power. If supplies exist but
// none of them is an online Mains supply the device runs on USB. A machine
// without any supply entries is assumed to be on main power.
type SupplyProbe struct {
	// root is the power_supply class directory.
	root string
}

// NewSupplyProbe creates a probe reading root, or DefaultPowerSupplyClass if empty.
func NewSupplyProbe(root string) *SupplyProbe {
	if root == "" {
		root = DefaultPowerSupplyClass
	}

	return &SupplyProbe{
		root: filepath.Clean(root),
	}
}

// Supply reads the current power source.
func (p *SupplyProbe) Supply() (device.SupplyState, error) {
	entries, err := os.ReadDir(p.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return device.MainSupply, nil
		}

		return device.MainSupply, fmt.Errorf("read power supplies: %w", err)
	}

	if len(entries) == 0 {
		return device.MainSupply, nil
	}

	for _, entry := range entries {
		dir := filepath.Join(p.root, entry.Name())

		if readAttribute(dir, "type") != "Mains" {
			continue
		}

		if readAttribute(dir, "online") == "1" {
			return device.MainSupply, nil
		}
	}

	return device.USBSupply, nil
}

// readAttribute returns a trimmed sysfs attribute or "" when unreadable.
func readAttribute(dir, name string) string {
	contents, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(contents))
}

// supplyOverlay replaces the supply field of another source.
type supplyOverlay struct {
	// base provides alarm and USB activity.
	base Source
	// probe provides the supply.
	probe *SupplyProbe
}

// WithSupply returns a Source taking the supply from probe and everything
// else from base.
//
//nolint:ireturn // Callers only need the Source behaviour.
func WithSupply(base Source, probe *SupplyProbe) Source {
	return &supplyOverlay{
		base:  base,
		probe: probe,
	}
}

// Snapshot implements Source.
func (o *supplyOverlay) Snapshot(ctx context.Context) (device.State, error) {
	state, err := o.base.Snapshot(ctx)
	if err != nil {
		return state, err
	}

	supply, err := o.probe.Supply()
	if err != nil {
		return state, fmt.Errorf("probe supply: %w", err)
	}

	state.Supply = supply

	return state, nil
}
