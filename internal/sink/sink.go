package sink

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/oshokin/status-blinker/internal/domain/indicator"
)

// Sink receives the LED mask once per tick.
type Sink interface {
	SetLEDs(ctx context.Context, mask indicator.LEDMask) error
}

// Close closes s if it implements io.Closer.
func Close(s Sink) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}

	return nil
}

// Multi sends every mask to all of its sinks.
type Multi []Sink

// SetLEDs implements Sink. Every sink is called even if an earlier one fails.
func (m Multi) SetLEDs(ctx context.Context, mask indicator.LEDMask) error {
	var errs []error

	for _, s := range m {
		if err := s.SetLEDs(ctx, mask); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Close closes every sink that supports it.
func (m Multi) Close() error {
	var errs []error

	for _, s := range m {
		if err := Close(s); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Recorder keeps every mask it receives.
type Recorder struct {
	// masks is the history in arrival order.
	masks []indicator.LEDMask
	// mu protects masks.
	mu sync.Mutex
}

// SetLEDs implements Sink.
func (r *Recorder) SetLEDs(_ context.Context, mask indicator.LEDMask) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.masks = append(r.masks, mask)

	return nil
}

// Masks returns a copy of the recorded history.
func (r *Recorder) Masks() []indicator.LEDMask {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]indicator.LEDMask(nil), r.masks...)
}

// Last returns the most recent mask and whether any was recorded.
func (r *Recorder) Last() (indicator.LEDMask, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.masks) == 0 {
		return indicator.Off, false
	}

	return r.masks[len(r.masks)-1], true
}

// changeFilter remembers the previous mask so sinks can act on changes only.
type changeFilter struct {
	last    indicator.LEDMask
	started bool
	mu      sync.Mutex
}

// changed reports whether mask differs from the previous one and records it.
func (f *changeFilter) changed(mask indicator.LEDMask) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.started && f.last == mask {
		return false
	}

	f.last = mask
	f.started = true

	return true
}

// Discard accepts every mask and does nothing.
//
//nolint:gochecknoglobals // Stateless sink shared by callers.
var Discard Sink = discard{}

type discard struct{}

func (discard) SetLEDs(context.Context, indicator.LEDMask) error { return nil }
