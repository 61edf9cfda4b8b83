package device

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestDefault verifies the startup state.
func TestDefault(t *testing.T) {
	t.Parallel()

	s := Default()
	require.Equal(t, NoAlarm, s.CurrentAlarm())
	require.Equal(t, MainSupply, s.CurrentSupply())
	require.False(t, s.CurrentUSBActivity())
}

// TestParseAlarm checks accepted spellings and rejection of unknown names.
func TestParseAlarm(t *testing.T) {
	t.Parallel()

	cases := map[string]AlarmState{
		"":         NoAlarm,
		"none":     NoAlarm,
		"Active":   ActiveAlarm,
		" pending": PendingAlarm,
	}
	for s, want := range cases {
		got, err := ParseAlarm(s)
		require.NoError(t, err, s)
		require.Equal(t, want, got, s)
	}

	_, err := ParseAlarm("loud")
	require.ErrorIs(t, err, ErrUnknownAlarm)
}

// TestParseSupply checks accepted spellings and rejection of unknown names.
func TestParseSupply(t *testing.T) {
	t.Parallel()

	got, err := ParseSupply("USB")
	require.NoError(t, err)
	require.Equal(t, USBSupply, got)

	got, err = ParseSupply("mains")
	require.NoError(t, err)
	require.Equal(t, MainSupply, got)

	_, err = ParseSupply("solar")
	require.ErrorIs(t, err, ErrUnknownSupply)
}

// TestStateYAML ensures states are readable from hand-written YAML.
func TestStateYAML(t *testing.T) {
	t.Parallel()

	var s State
	require.NoError(t, yaml.Unmarshal([]byte("alarm: pending\nsupply: usb\nusb_activity: true\n"), &s))
	require.Equal(t, State{Alarm: PendingAlarm, Supply: USBSupply, USBActivity: true}, s)

	out, err := yaml.Marshal(s)
	require.NoError(t, err)
	require.Contains(t, string(out), "alarm: pending")

	require.Error(t, yaml.Unmarshal([]byte("alarm: loud\n"), &s))
}

type splitConditions struct {
	reads int
}

func (c *splitConditions) CurrentAlarm() AlarmState {
	c.reads++

	return ActiveAlarm
}

func (c *splitConditions) CurrentSupply() SupplyState {
	c.reads++

	return USBSupply
}

func (c *splitConditions) CurrentUSBActivity() bool {
	c.reads++

	return true
}

// TestCapture verifies that each accessor is read exactly once.
func TestCapture(t *testing.T) {
	t.Parallel()

	c := new(splitConditions)
	s := Capture(c)

	require.Equal(t, 3, c.reads)
	require.Equal(t, State{Alarm: ActiveAlarm, Supply: USBSupply, USBActivity: true}, s)

	require.Equal(t, Default(), Capture((*State)(nil)))
}
