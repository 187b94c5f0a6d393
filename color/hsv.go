package color

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSV is a colour with hue in [0,360) and saturation/value in [0,1].
// Values built through New, Lerp, or the With* helpers are always in range.
type HSV struct {
	H float64
	S float64
	V float64
}

var (
	Black = HSV{0, 0, 0}
	White = HSV{0, 0, 1}
	Red   = HSV{0, 1, 1}
	Green = HSV{120, 1, 1}
	Blue  = HSV{240, 1, 1}
	Cyan  = HSV{180, 1, 1}
)

// New builds a colour, wrapping h modulo 360 and clamping s and v.
func New(h, s, v float64) HSV {
	return HSV{H: WrapHue(h), S: clamp01(s), V: clamp01(v)}
}

// WrapHue maps any hue onto [0,360).
func WrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}

// Lerp interpolates each channel independently. t is not clamped; callers
// pass t in [0,1] for a well defined blend.
func Lerp(c1, c2 HSV, t float64) HSV {
	return New(
		c1.H+(c2.H-c1.H)*t,
		c1.S+(c2.S-c1.S)*t,
		c1.V+(c2.V-c1.V)*t,
	)
}

func (c HSV) WithHue(h float64) HSV   { return New(h, c.S, c.V) }
func (c HSV) WithSat(s float64) HSV   { return New(c.H, s, c.V) }
func (c HSV) WithValue(v float64) HSV { return New(c.H, c.S, v) }

// Scale multiplies the value channel, leaving hue and saturation alone.
func (c HSV) Scale(f float64) HSV {
	return New(c.H, c.S, c.V*f)
}

// RGB converts using the six sector hexagonal projection.
func (c HSV) RGB() (r, g, b uint8) {
	chroma := c.V * c.S
	hp := math.Mod(c.H, 360) / 60
	x := chroma * (1 - math.Abs(math.Mod(hp, 2)-1))
	m := c.V - chroma

	var r1, g1, b1 float64
	switch {
	case hp >= 0 && hp < 1:
		r1, g1, b1 = chroma, x, 0
	case hp >= 1 && hp < 2:
		r1, g1, b1 = x, chroma, 0
	case hp >= 2 && hp < 3:
		r1, g1, b1 = 0, chroma, x
	case hp >= 3 && hp < 4:
		r1, g1, b1 = 0, x, chroma
	case hp >= 4 && hp < 5:
		r1, g1, b1 = x, 0, chroma
	default:
		r1, g1, b1 = chroma, 0, x
	}

	return channel(r1 + m), channel(g1 + m), channel(b1 + m)
}

// Colorful adapts the colour for terminal rendering.
func (c HSV) Colorful() colorful.Color {
	return colorful.Hsv(c.H, c.S, c.V)
}

// Hex returns the #rrggbb form of the colour.
func (c HSV) Hex() string {
	r, g, b := c.RGB()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func (c HSV) String() string {
	return fmt.Sprintf("hsv(%.0f, %.2f, %.2f)", c.H, c.S, c.V)
}

func channel(x float64) uint8 {
	return uint8(math.Round(255 * clamp01(x)))
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
