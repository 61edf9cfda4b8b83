// Package source produces device.State snapshots for the indicator.
//
// Sources range from a tick-indexed Scenario used in simulation, to a YAML
// conditions file polled into a Store, to a probe of the Linux power_supply
// class. Every source hands out value snapshots so one evaluation always sees
// a consistent state.
package source
