package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/status-blinker/internal/domain/device"
)

// writeSupply creates a fake power_supply entry.
func writeSupply(t *testing.T, root, name, kind, online string) {
	t.Helper()

	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "type"), []byte(kind+"\n"), 0o600))

	if online != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "online"), []byte(online+"\n"), 0o600))
	}
}

// TestSupplyProbe covers mains online, mains offline and missing class directory.
func TestSupplyProbe(t *testing.T) {
	t.Parallel()

	// No class directory at all.
	got, err := NewSupplyProbe(filepath.Join(t.TempDir(), "absent")).Supply()
	require.NoError(t, err)
	require.Equal(t, device.MainSupply, got)

	root := t.TempDir()
	writeSupply(t, root, "usb", "USB", "1")
	writeSupply(t, root, "AC", "Mains", "0")

	probe := NewSupplyProbe(root)

	got, err = probe.Supply()
	require.NoError(t, err)
	require.Equal(t, device.USBSupply, got)

	writeSupply(t, root, "AC", "Mains", "1")

	got, err = probe.Supply()
	require.NoError(t, err)
	require.Equal(t, device.MainSupply, got)
}

// TestWithSupply overrides only the supply field.
func TestWithSupply(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSupply(t, root, "BAT0", "Battery", "")

	base := NewStore(device.State{Alarm: device.ActiveAlarm, USBActivity: true})
	src := WithSupply(base, NewSupplyProbe(root))

	got, err := src.Snapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, device.State{Alarm: device.ActiveAlarm, Supply: device.USBSupply, USBActivity: true}, got)
}
