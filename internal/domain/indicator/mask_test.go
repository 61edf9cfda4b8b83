package indicator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLEDMaskRendering checks Letters and String for common masks.
func TestLEDMaskRendering(t *testing.T) {
	t.Parallel()

	require.Empty(t, Off.Letters())
	require.Equal(t, "off", Off.String())
	require.Equal(t, "R", Red.String())
	require.Equal(t, "GB", (Green | Blue).Letters())
	require.Equal(t, "RGB", All.String())

	require.True(t, All.Has(Red|Blue))
	require.False(t, Green.Has(Blue))
}
