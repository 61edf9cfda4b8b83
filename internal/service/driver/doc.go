// Package driver runs the status indicator: it takes a condition snapshot
// on every tick, lets the indicator FSM pick the LEDs and hands the result
// to a sink.
//
// Run wires the live driver from configuration; Simulate replays a scenario
// on the host and prints a per-tick trace.
package driver
