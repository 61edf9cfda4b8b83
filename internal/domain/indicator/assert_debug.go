//go:build blinkerdebug

package indicator

// assertCounters panics when the counters leave their ranges.
// Enabled with -tags blinkerdebug.
func assertCounters(c DutyCounters) {
	if err := c.Validate(); err != nil {
		panic(err)
	}
}
