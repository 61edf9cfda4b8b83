package indicator

import (
	"errors"
	"fmt"
)

// Display durations in ticks. These values are part of the visible behaviour
// of the device and must not be tuned.
const (
	// RedActiveTicks is how long an active alarm holds the red LED.
	RedActiveTicks = 100
	// RedPendingTicks is how long a pending alarm holds the red LED.
	RedPendingTicks = 1000
	// GreenActivityTicks is how long USB activity holds the green LED.
	GreenActivityTicks = 98
)

// ErrCounterOutOfRange reports a duty counter outside its allowed range.
var ErrCounterOutOfRange = errors.New("duty counter out of range")

// DutyCounters hold the remaining display ticks per colour.
// Zero means the colour may be claimed again on this tick.
//
// A red value above RedActiveTicks means a pending alarm is being shown;
// a value in (0, RedActiveTicks] means an active alarm is being shown.
type DutyCounters struct {
	// Red counts down the alarm display.
	Red int16
	// Green counts down the USB activity display.
	Green int8
}

// RedIdle reports whether the red LED may be claimed.
func (c DutyCounters) RedIdle() bool { return c.Red == 0 }

// GreenIdle reports whether the green LED may be claimed.
func (c DutyCounters) GreenIdle() bool { return c.Green == 0 }

// ShowingPending reports whether the red display was started by a pending alarm.
func (c DutyCounters) ShowingPending() bool { return c.Red > RedActiveTicks }

// Validate checks that both counters are inside their ranges.
func (c DutyCounters) Validate() error {
	if c.Red < 0 || c.Red > RedPendingTicks {
		return fmt.Errorf("%w: red=%d", ErrCounterOutOfRange, c.Red)
	}

	if c.Green < 0 || c.Green > GreenActivityTicks {
		return fmt.Errorf("%w: green=%d", ErrCounterOutOfRange, c.Green)
	}

	return nil
}

// tick moves both counters one step towards idle.
func (c *DutyCounters) tick() {
	if c.Red > 0 {
		c.Red--
	}

	if c.Green > 0 {
		c.Green--
	}
}
