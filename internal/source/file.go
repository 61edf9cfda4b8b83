package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/status-blinker/internal/domain/device"
	"github.com/oshokin/status-blinker/internal/logger"
)

// File keeps device conditions in sync with a YAML file such as:
//
//	alarm: pending
//	supply: usb
//	usb_activity: true
//
// Missing keys take their default values. A missing file leaves the last
// known state untouched.
type File struct {
	// path is the YAML conditions file.
	path string
	// store holds the last successfully read state.
	store *Store
	// modTime is the modification time of the last read.
	modTime time.Time
	// size is the file size at the last read.
	size int64
}

// NewFile creates a File source reading path, starting from the default state.
func NewFile(path string) *File {
	return &File{
		path:  filepath.Clean(path),
		store: NewStore(device.Default()),
	}
}

// Path returns the watched file.
func (f *File) Path() string {
	return f.path
}

// Snapshot implements Source.
func (f *File) Snapshot(ctx context.Context) (device.State, error) {
	return f.store.Snapshot(ctx)
}

// Refresh re-reads the file if it changed since the last read.
// It returns os.ErrNotExist (wrapped) when the file is absent.
func (f *File) Refresh(ctx context.Context) error {
	info, err := os.Stat(f.path)
	if err != nil {
		return fmt.Errorf("stat conditions file: %w", err)
	}

	if !f.modTime.IsZero() && info.ModTime().Equal(f.modTime) && info.Size() == f.size {
		return nil
	}

	contents, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("read conditions file: %w", err)
	}

	state := device.Default()
	if err := yaml.Unmarshal(contents, &state); err != nil {
		return fmt.Errorf("decode conditions file: %w", err)
	}

	f.store.Set(state)
	f.modTime = info.ModTime()
	f.size = info.Size()

	logger.DebugKV(ctx, "Conditions reloaded",
		"alarm", state.Alarm,
		"supply", state.Supply,
		"usb_activity", state.USBActivity,
	)

	return nil
}

// Watch refreshes the file every interval until ctx is canceled.
// Read errors are logged once per distinct error and never stop the watch.
func (f *File) Watch(ctx context.Context, interval time.Duration) error {
	ctx = logger.WithKV(ctx, "conditions_file", f.path)

	lastErr := f.refreshLogged(ctx, "")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			lastErr = f.refreshLogged(ctx, lastErr)
		}
	}
}

// refreshLogged refreshes and logs an error only if it differs from lastErr.
func (f *File) refreshLogged(ctx context.Context, lastErr string) string {
	err := f.Refresh(ctx)
	if err == nil {
		return ""
	}

	if err.Error() != lastErr {
		if errors.Is(err, os.ErrNotExist) {
			logger.WarnKV(ctx, "Conditions file not found, keeping last state")
		} else {
			logger.ErrorKV(ctx, "Conditions file refresh failed", "error", err)
		}
	}

	return err.Error()
}
