// Package indicator resolves competing device conditions into a single LED
// mask once per tick.
//
// The FSM walks a fixed priority order (alarm, USB activity, power supply) and
// stretches momentary conditions over several ticks with DutyCounters, so a
// one-tick event stays visible long enough to be noticed.
package indicator
