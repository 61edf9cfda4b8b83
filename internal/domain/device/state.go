package device

import (
	"errors"
	"fmt"
	"strings"
)

// AlarmState reports whether an alarm is raised and how urgent it is.
type AlarmState uint8

const (
	// NoAlarm means nothing needs attention.
	NoAlarm AlarmState = iota
	// ActiveAlarm is an alarm that is happening right now.
	ActiveAlarm
	// PendingAlarm is an alarm that was raised but not yet acted upon.
	PendingAlarm
)

// SupplyState reports where the device draws its power from.
type SupplyState uint8

const (
	// MainSupply means the device runs off main power.
	MainSupply SupplyState = iota
	// USBSupply means the device is powered over USB only.
	USBSupply
)

var (
	// ErrUnknownAlarm is returned when an alarm name cannot be parsed.
	ErrUnknownAlarm = errors.New("unknown alarm state")
	// ErrUnknownSupply is returned when a supply name cannot be parsed.
	ErrUnknownSupply = errors.New("unknown supply state")
)

// String implements fmt.Stringer.
func (a AlarmState) String() string {
	switch a {
	case NoAlarm:
		return "none"
	case ActiveAlarm:
		return "active"
	case PendingAlarm:
		return "pending"
	default:
		return fmt.Sprintf("alarm(%d)", uint8(a))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a AlarmState) MarshalText() ([]byte, error) {
	if a > PendingAlarm {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlarm, uint8(a))
	}

	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *AlarmState) UnmarshalText(text []byte) error {
	parsed, err := ParseAlarm(string(text))
	if err != nil {
		return err
	}

	*a = parsed

	return nil
}

// ParseAlarm converts a textual alarm name into AlarmState.
func ParseAlarm(s string) (AlarmState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "no", "off":
		return NoAlarm, nil
	case "active":
		return ActiveAlarm, nil
	case "pending":
		return PendingAlarm, nil
	default:
		return NoAlarm, fmt.Errorf("%w: %q", ErrUnknownAlarm, s)
	}
}

// String implements fmt.Stringer.
func (s SupplyState) String() string {
	switch s {
	case MainSupply:
		return "main"
	case USBSupply:
		return "usb"
	default:
		return fmt.Sprintf("supply(%d)", uint8(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s SupplyState) MarshalText() ([]byte, error) {
	if s > USBSupply {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSupply, uint8(s))
	}

	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SupplyState) UnmarshalText(text []byte) error {
	parsed, err := ParseSupply(string(text))
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}

// ParseSupply converts a textual supply name into SupplyState.
func ParseSupply(s string) (SupplyState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "main", "mains":
		return MainSupply, nil
	case "usb":
		return USBSupply, nil
	default:
		return MainSupply, fmt.Errorf("%w: %q", ErrUnknownSupply, s)
	}
}

// Conditions exposes the current device conditions to the indicator.
type Conditions interface {
	CurrentAlarm() AlarmState
	CurrentSupply() SupplyState
	CurrentUSBActivity() bool
}

// State is a snapshot of all device conditions at a single tick.
// Every combination of fields is valid.
type State struct {
	// Alarm is the current alarm state.
	Alarm AlarmState `yaml:"alarm"`
	// Supply is the current power source.
	Supply SupplyState `yaml:"supply"`
	// USBActivity reports data traffic on the USB port.
	USBActivity bool `yaml:"usb_activity"`
}

// Default returns the state the device starts with.
func Default() State {
	return State{
		Alarm:       NoAlarm,
		Supply:      MainSupply,
		USBActivity: false,
	}
}

// CurrentAlarm implements Conditions.
func (s State) CurrentAlarm() AlarmState { return s.Alarm }

// CurrentSupply implements Conditions.
func (s State) CurrentSupply() SupplyState { return s.Supply }

// CurrentUSBActivity implements Conditions.
func (s State) CurrentUSBActivity() bool { return s.USBActivity }

// Capture reads every accessor once and returns the result as a State,
// so a single evaluation never sees a partially updated view.
func Capture(c Conditions) State {
	if s, ok := c.(State); ok {
		return s
	}

	if s, ok := c.(*State); ok {
		if s == nil {
			return Default()
		}

		return *s
	}

	return State{
		Alarm:       c.CurrentAlarm(),
		Supply:      c.CurrentSupply(),
		USBActivity: c.CurrentUSBActivity(),
	}
}
