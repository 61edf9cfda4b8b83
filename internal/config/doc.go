// Package config defines the driver settings and provides helpers to load,
// validate and save them in YAML format.
//
// Config covers the tick period, the log level, where device conditions come
// from and which LED backend receives the result.
package config
