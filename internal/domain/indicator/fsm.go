package indicator

import "github.com/oshokin/status-blinker/internal/domain/device"

// step is a stage of a single evaluation. Every evaluation starts at
// stepInitial and ends at stepFinish; nothing carries over between ticks
// except the duty counters.
type step uint8

const (
	stepInitial step = iota + 1
	stepProcessAlarms
	stepCheckUSB
	stepCheckSupply
	stepFinish
)

func (s step) String() string {
	switch s {
	case stepInitial:
		return "initial"
	case stepProcessAlarms:
		return "process_alarms"
	case stepCheckUSB:
		return "check_usb"
	case stepCheckSupply:
		return "check_supply"
	case stepFinish:
		return "finish"
	default:
		return "unknown"
	}
}

// FSM picks which LED to light on each tick.
// It is not safe for concurrent use; callers evaluate once per tick.
type FSM struct {
	// counters keep multi-tick displays alive between evaluations.
	counters DutyCounters
}

// NewFSM returns an FSM with idle counters.
func NewFSM() *FSM {
	return new(FSM)
}

// Counters returns a copy of the current duty counters.
func (f *FSM) Counters() DutyCounters {
	return f.counters
}

// Reset returns both counters to idle.
func (f *FSM) Reset() {
	f.counters = DutyCounters{}
}

// Evaluate decides the LED mask for this tick and advances the counters.
//
// Priority is alarm, then USB activity, then power supply. An active alarm
// arriving while a pending alarm is still on display restarts red with the
// shorter active duration.
func (f *FSM) Evaluate(c device.Conditions) LEDMask {
	var (
		state = device.Capture(c)
		mask  = Off
		next  = stepInitial
	)

	for {
		switch next {
		case stepInitial:
			next = stepCheckUSB
			if state.Alarm != device.NoAlarm {
				next = stepProcessAlarms
			}

		case stepProcessAlarms:
			next = stepCheckUSB

			switch {
			case f.counters.RedIdle():
				mask = Red
				f.counters.Red = RedPendingTicks

				if state.Alarm == device.ActiveAlarm {
					f.counters.Red = RedActiveTicks
				}

				next = stepFinish
			case f.counters.ShowingPending() && state.Alarm == device.ActiveAlarm:
				f.counters.Red = RedActiveTicks
				mask = Red
				next = stepFinish
			}

		case stepCheckUSB:
			next = stepCheckSupply

			if state.USBActivity && f.counters.GreenIdle() {
				mask = Green
				f.counters.Green = GreenActivityTicks
				next = stepFinish
			}

		case stepCheckSupply:
			next = stepFinish

			if state.Supply == device.MainSupply {
				mask = Blue
				break
			}

			// USB power borrows the green LED but does not arm its counter.
			if f.counters.GreenIdle() {
				mask = Green
			}

		case stepFinish:
			f.counters.tick()
			assertCounters(f.counters)

			return mask

		default:
			panic("indicator: unknown step " + next.String())
		}
	}
}
