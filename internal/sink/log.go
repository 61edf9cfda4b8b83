package sink

import (
	"context"

	"github.com/oshokin/status-blinker/internal/domain/indicator"
	"github.com/oshokin/status-blinker/internal/logger"
)

// Log writes mask changes to the logger carried by the context.
type Log struct {
	filter changeFilter
}

// NewLog creates a Log sink.
func NewLog() *Log {
	return new(Log)
}

// SetLEDs implements Sink.
func (l *Log) SetLEDs(ctx context.Context, mask indicator.LEDMask) error {
	if l.filter.changed(mask) {
		logger.InfoKV(ctx, "LEDs changed", "mask", mask.String())
	}

	return nil
}
