package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/status-blinker/internal/domain/device"
)

// TestFile_Refresh reads, reloads and survives a missing file.
func TestFile_Refresh(t *testing.T) {
	t.Parallel()

	var (
		ctx  = context.Background()
		path = filepath.Join(t.TempDir(), "conditions.yaml")
		src  = NewFile(path)
	)

	// Missing file keeps the default state.
	require.ErrorIs(t, src.Refresh(ctx), os.ErrNotExist)

	got, err := src.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, device.Default(), got)

	require.NoError(t, os.WriteFile(path, []byte("alarm: active\nusb_activity: true\n"), 0o600))
	require.NoError(t, src.Refresh(ctx))

	got, err = src.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, device.State{Alarm: device.ActiveAlarm, USBActivity: true}, got)

	// Rewrite with a different timestamp to force a reload.
	require.NoError(t, os.WriteFile(path, []byte("supply: usb\n"), 0o600))

	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))
	require.NoError(t, src.Refresh(ctx))

	got, err = src.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, device.State{Supply: device.USBSupply}, got)

	// Broken YAML keeps the last good state.
	require.NoError(t, os.WriteFile(path, []byte("alarm: [\n"), 0o600))

	later = later.Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))
	require.Error(t, src.Refresh(ctx))

	got, err = src.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, device.State{Supply: device.USBSupply}, got)
}

// TestFile_Watch picks up a file created after the watch started.
func TestFile_Watch(t *testing.T) {
	t.Parallel()

	var (
		path        = filepath.Join(t.TempDir(), "conditions.yaml")
		src         = NewFile(path)
		ctx, cancel = context.WithCancel(context.Background())
		done        = make(chan error, 1)
	)

	go func() {
		done <- src.Watch(ctx, 10*time.Millisecond)
	}()

	require.NoError(t, os.WriteFile(path, []byte("alarm: pending\n"), 0o600))

	require.Eventually(t, func() bool {
		st, _ := src.Snapshot(context.Background())

		return st.Alarm == device.PendingAlarm
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
