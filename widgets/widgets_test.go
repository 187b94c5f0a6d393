package widgets

import (
	"strings"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ramp(n int) []colorful.Color {
	out := make([]colorful.Color, n)
	for i := range out {
		out[i] = colorful.Hsv(float64(i), 1, 1)
	}
	return out
}

func TestSample(t *testing.T) {
	in := ramp(10)
	assert.Len(t, Sample(in, 20), 10)

	got := Sample(in, 5)
	require.Len(t, got, 5)
	assert.Equal(t, in[0], got[0])
	assert.Equal(t, in[2], got[1])
	assert.Equal(t, in[8], got[4])
}

func TestRenderStripWraps(t *testing.T) {
	out := RenderStrip(ramp(10), 4, 5, '#')
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, 4, strings.Count(lines[0], "#"))
	assert.Equal(t, 2, strings.Count(lines[2], "#"))
}

func TestRenderStripSamplesDown(t *testing.T) {
	out := RenderStrip(ramp(100), 10, 2, '#')
	assert.Len(t, strings.Split(out, "\n"), 2)
	assert.Equal(t, 20, strings.Count(out, "#"))

	assert.Empty(t, RenderStrip(nil, 10, 2, '#'))
}

func TestRenderParams(t *testing.T) {
	out := RenderParams([]ParamRow{
		{Label: "Hue", Value: "180", Down: "H", Up: "h"},
		{Label: "Saturation", Value: "1.00", Down: "S", Up: "s"},
	})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "  Hue          180  [H/h]", lines[0])
	assert.Equal(t, "  Saturation  1.00  [S/s]", lines[1])

	assert.Contains(t, RenderParams(nil), "no parameters")
}

func TestRenderKeyLine(t *testing.T) {
	assert.Equal(t, "q:quit  t:transmit", RenderKeyLine([]KeyBinding{{"q", "quit"}, {"t", "transmit"}}))
}

func TestRenderKeyHelp(t *testing.T) {
	out := RenderKeyHelp([]KeySection{
		{Title: "Controls", Keys: []KeyBinding{{"t", "toggle transmit"}}},
		{Keys: []KeyBinding{{"q", "quit"}}},
	})
	assert.Equal(t, "Controls\n  t            toggle transmit\n  q            quit", out)
}
