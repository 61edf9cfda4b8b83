package guard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/status-blinker/internal/logger"
)

// ErrAlreadyRunning is returned when another process with the same
// executable name is alive.
var ErrAlreadyRunning = errors.New("another driver instance is already running")

// EnsureSingleInstance fails with ErrAlreadyRunning when another process
// runs the same executable as this one.
func EnsureSingleInstance(ctx context.Context) error {
	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	processList, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}

	others := findOthers(processList, os.Getpid(), filepath.Base(self))
	if len(others) == 0 {
		return nil
	}

	logger.WarnKV(ctx, "Driver already running", "pids", others)

	return fmt.Errorf("%w: pid %d", ErrAlreadyRunning, others[0])
}

// findOthers returns the pids of processes named name, skipping selfPID.
func findOthers(processList []ps.Process, selfPID int, name string) []int {
	var pids []int

	for _, process := range processList {
		if process.Pid() == selfPID {
			continue
		}

		if !sameExecutable(process.Executable(), name) {
			continue
		}

		pids = append(pids, process.Pid())
	}

	return pids
}

// commLength is the length Linux truncates process names to.
const commLength = 15

// sameExecutable compares a process table name with an executable name,
// allowing for kernel truncation.
func sameExecutable(listed, name string) bool {
	if listed == name {
		return true
	}

	return len(listed) == commLength && strings.HasPrefix(name, listed)
}
