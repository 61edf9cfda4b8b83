// Package sink turns LED masks into output.
//
// GPIO drives real LEDs through periph.io, Console prints them to a
// terminal, Log writes them to the structured log and Recorder keeps them in
// memory. Multi fans one mask out to several sinks.
package sink
