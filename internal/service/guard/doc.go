// Package guard keeps two driver processes from fighting over the same LEDs.
package guard
