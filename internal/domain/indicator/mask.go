package indicator

import "strings"

// LEDMask is the set of LEDs lit during one tick.
type LEDMask uint8

const (
	// Off lights nothing.
	Off LEDMask = 0x00
	// Red is the alarm LED.
	Red LEDMask = 0x01
	// Green is the USB LED.
	Green LEDMask = 0x02
	// Blue is the main power LED.
	Blue LEDMask = 0x04

	// All is every LED the device has.
	All = Red | Green | Blue
)

// Has reports whether every LED in other is lit in m.
func (m LEDMask) Has(other LEDMask) bool {
	return m&other == other
}

// Letters renders the mask as a subset of "RGB", empty when nothing is lit.
func (m LEDMask) Letters() string {
	var b strings.Builder

	if m.Has(Red) {
		b.WriteByte('R')
	}

	if m.Has(Green) {
		b.WriteByte('G')
	}

	if m.Has(Blue) {
		b.WriteByte('B')
	}

	return b.String()
}

// String implements fmt.Stringer.
func (m LEDMask) String() string {
	if m&All == Off {
		return "off"
	}

	return m.Letters()
}
