// Package device models the raw conditions the status indicator reacts to.
//
// State holds the alarm, power supply and USB activity flags. Sources produce
// State snapshots; the indicator reads them through the Conditions accessors.
package device
