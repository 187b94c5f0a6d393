package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRGBKnownColours(t *testing.T) {
	tests := []struct {
		name    string
		in      HSV
		r, g, b uint8
	}{
		{"white", HSV{0, 0, 1}, 255, 255, 255},
		{"red", HSV{0, 1, 1}, 255, 0, 0},
		{"green", HSV{120, 1, 1}, 0, 255, 0},
		{"blue", HSV{240, 1, 1}, 0, 0, 255},
		{"yellow", HSV{60, 1, 1}, 255, 255, 0},
		{"magenta sector fallback", HSV{300, 1, 1}, 255, 0, 255},
		{"black", Black, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := tt.in.RGB()
			assert.Equal(t, [3]uint8{tt.r, tt.g, tt.b}, [3]uint8{r, g, b})
		})
	}
}

func TestRGBZeroSaturationIsGrey(t *testing.T) {
	for h := 0.0; h < 360; h += 15 {
		for _, v := range []float64{0, 0.2, 0.5, 1} {
			r, g, b := HSV{h, 0, v}.RGB()
			assert.Equal(t, r, g)
			assert.Equal(t, g, b)
			assert.Equal(t, channel(v), r, "h=%v v=%v", h, v)
		}
	}
}

func TestLerpEndpoints(t *testing.T) {
	pairs := [][2]HSV{
		{Black, White},
		{Red, Blue},
		{New(10, 0.3, 0.7), New(350, 0.9, 0.1)},
		{Cyan, Green},
	}
	for _, p := range pairs {
		for _, got := range []struct {
			t    float64
			want HSV
		}{{0, p[0]}, {1, p[1]}} {
			c := Lerp(p[0], p[1], got.t)
			assert.InDelta(t, got.want.H, c.H, 1e-9)
			assert.InDelta(t, got.want.S, c.S, 1e-9)
			assert.InDelta(t, got.want.V, c.V, 1e-9)
		}
	}
}

func TestLerpMidpointGrey(t *testing.T) {
	mid := Lerp(Black, White, 0.5)
	assert.InDelta(t, 0.5, mid.V, 1e-9)
	r, g, b := mid.RGB()
	assert.Equal(t, [3]uint8{128, 128, 128}, [3]uint8{r, g, b})
}

func TestNewWrapsAndClamps(t *testing.T) {
	c := New(-30, 1.5, -0.2)
	assert.InDelta(t, 330, c.H, 1e-9)
	assert.Equal(t, 1.0, c.S)
	assert.Equal(t, 0.0, c.V)

	assert.InDelta(t, 0, New(360, 1, 1).H, 1e-9)
	assert.InDelta(t, 90, New(810, 1, 1).H, 1e-9)
}

func TestScaleOnlyTouchesValue(t *testing.T) {
	c := New(200, 0.4, 0.8).Scale(0.5)
	assert.InDelta(t, 200, c.H, 1e-9)
	assert.InDelta(t, 0.4, c.S, 1e-9)
	assert.InDelta(t, 0.4, c.V, 1e-9)
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#ff0000", Red.Hex())
	assert.Equal(t, "#000000", Black.Hex())
}
