package sink

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/oshokin/status-blinker/internal/domain/indicator"
)

//nolint:gochecknoglobals // Styles are immutable after init.
var (
	redStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	greenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	blueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)
	darkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

const (
	litGlyph  = "●"
	darkGlyph = "○"
)

// Console prints a line to a writer whenever the mask changes.
type Console struct {
	// out receives the rendered lines.
	out io.Writer
	// color enables terminal colours.
	color bool
	// filter drops repeated masks.
	filter changeFilter
}

// NewConsole creates a Console writing to out.
func NewConsole(out io.Writer, color bool) *Console {
	return &Console{
		out:   out,
		color: color,
	}
}

// SetLEDs implements Sink.
func (c *Console) SetLEDs(_ context.Context, mask indicator.LEDMask) error {
	if !c.filter.changed(mask) {
		return nil
	}

	if _, err := fmt.Fprintln(c.out, Render(mask, c.color)); err != nil {
		return fmt.Errorf("write console: %w", err)
	}

	return nil
}

// Render draws the three LEDs. Without colour every lit LED is shown by
// its letter and a dark one by a dot.
func Render(mask indicator.LEDMask, color bool) string {
	leds := []struct {
		bit    indicator.LEDMask
		letter string
		style  lipgloss.Style
	}{
		{indicator.Red, "R", redStyle},
		{indicator.Green, "G", greenStyle},
		{indicator.Blue, "B", blueStyle},
	}

	parts := make([]string, 0, len(leds))

	for _, led := range leds {
		lit := mask.Has(led.bit)

		switch {
		case color && lit:
			parts = append(parts, led.style.Render(litGlyph))
		case color:
			parts = append(parts, darkStyle.Render(darkGlyph))
		case lit:
			parts = append(parts, led.letter)
		default:
			parts = append(parts, ".")
		}
	}

	return strings.Join(parts, " ")
}
