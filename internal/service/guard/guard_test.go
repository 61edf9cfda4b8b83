package guard

import (
	"context"
	"testing"

	"github.com/mitchellh/go-ps"
	"github.com/stretchr/testify/require"
)

// fakeProcess implements ps.Process for tests.
type fakeProcess struct {
	pid  int
	name string
}

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return 1 }
func (p fakeProcess) Executable() string { return p.name }

// TestFindOthers skips this process and unrelated executables.
func TestFindOthers(t *testing.T) {
	t.Parallel()

	list := []ps.Process{
		fakeProcess{pid: 10, name: "blinker"},
		fakeProcess{pid: 11, name: "sshd"},
		fakeProcess{pid: 12, name: "blinker"},
	}

	require.Equal(t, []int{12}, findOthers(list, 10, "blinker"))
	require.Empty(t, findOthers(list, 10, "blinker-sim"))
}

// TestEnsureSingleInstance passes for the test binary, which runs alone.
func TestEnsureSingleInstance(t *testing.T) {
	t.Parallel()

	require.NoError(t, EnsureSingleInstance(context.Background()))
}

// TestSameExecutable accepts truncated process names.
func TestSameExecutable(t *testing.T) {
	t.Parallel()

	require.True(t, sameExecutable("blinker", "blinker"))
	require.True(t, sameExecutable("status-blinker-", "status-blinker-driver"))
	require.False(t, sameExecutable("blink", "blinker"))
}
