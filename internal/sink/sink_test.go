package sink

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/oshokin/status-blinker/internal/domain/indicator"
	"github.com/oshokin/status-blinker/internal/logger"
)

var errTestSink = errors.New("test sink error")

type failingSink struct{}

func (failingSink) SetLEDs(context.Context, indicator.LEDMask) error { return errTestSink }

// TestRecorder keeps the history in order.
func TestRecorder(t *testing.T) {
	t.Parallel()

	r := new(Recorder)

	_, ok := r.Last()
	require.False(t, ok)

	require.NoError(t, r.SetLEDs(context.Background(), indicator.Blue))
	require.NoError(t, r.SetLEDs(context.Background(), indicator.Red))

	require.Equal(t, []indicator.LEDMask{indicator.Blue, indicator.Red}, r.Masks())

	last, ok := r.Last()
	require.True(t, ok)
	require.Equal(t, indicator.Red, last)
}

// TestMulti calls every sink and joins failures.
func TestMulti(t *testing.T) {
	t.Parallel()

	a, b := new(Recorder), new(Recorder)
	m := Multi{a, failingSink{}, b}

	err := m.SetLEDs(context.Background(), indicator.Green)
	require.ErrorIs(t, err, errTestSink)

	require.Equal(t, []indicator.LEDMask{indicator.Green}, a.Masks())
	require.Equal(t, []indicator.LEDMask{indicator.Green}, b.Masks())
	require.NoError(t, m.Close())
}

// TestConsole prints only on change.
func TestConsole(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	c := NewConsole(&buf, false)
	ctx := context.Background()

	require.NoError(t, c.SetLEDs(ctx, indicator.Blue))
	require.NoError(t, c.SetLEDs(ctx, indicator.Blue))
	require.NoError(t, c.SetLEDs(ctx, indicator.Red))
	require.NoError(t, c.SetLEDs(ctx, indicator.Off))

	require.Equal(t, ". . B\nR . .\n. . .\n", buf.String())
}

// TestRenderColor uses glyphs instead of letters.
func TestRenderColor(t *testing.T) {
	t.Parallel()

	out := Render(indicator.Green, true)
	require.Contains(t, out, litGlyph)
	require.Contains(t, out, darkGlyph)
	require.NotContains(t, out, "G")
}

// TestLog writes one entry per change.
func TestLog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	ctx := logger.ToContext(context.Background(), logger.NewWithWriter(&buf, zapcore.InfoLevel))
	l := NewLog()

	require.NoError(t, l.SetLEDs(ctx, indicator.Red))
	require.NoError(t, l.SetLEDs(ctx, indicator.Red))
	require.NoError(t, l.SetLEDs(ctx, indicator.Off))

	out := buf.String()
	require.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("LEDs changed")))
	require.Contains(t, out, `"mask": "R"`)
	require.Contains(t, out, `"mask": "off"`)
}

// TestGPIO drives fake pins, including active-low wiring.
func TestGPIO(t *testing.T) {
	t.Parallel()

	var (
		red   = &gpiotest.Pin{N: "red"}
		green = &gpiotest.Pin{N: "green"}
		blue  = &gpiotest.Pin{N: "blue"}
	)

	g := NewGPIO(red, green, blue, false)
	require.NoError(t, g.SetLEDs(context.Background(), indicator.Red|indicator.Blue))

	require.Equal(t, gpio.High, red.Read())
	require.Equal(t, gpio.Low, green.Read())
	require.Equal(t, gpio.High, blue.Read())

	require.NoError(t, g.Close())
	require.Equal(t, gpio.Low, red.Read())
	require.Equal(t, gpio.Low, blue.Read())

	inverted := NewGPIO(red, green, blue, true)
	require.NoError(t, inverted.SetLEDs(context.Background(), indicator.Green))

	require.Equal(t, gpio.High, red.Read())
	require.Equal(t, gpio.Low, green.Read())
	require.Equal(t, gpio.High, blue.Read())
}
