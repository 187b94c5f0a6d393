package effect

import (
	"math"

	"go-ledfield/color"
	"go-ledfield/geom"
	"go-ledfield/pixel"
	"go-ledfield/settings"
)

// RainbowPlane maps distance from a travelling plane straight onto hue.
type RainbowPlane struct {
	Normal     geom.Vec3
	Offset     float64 // plane position along Normal
	Multiplier float64
	Speed      float64
}

func DefaultRainbowPlane(Env) *RainbowPlane {
	return &RainbowPlane{
		Normal:     geom.V(0, 1, 0),
		Multiplier: 2,
		Speed:      100,
	}
}

func (e *RainbowPlane) Kind() Kind { return KindRainbowPlane }

// period is the offset travel that shifts every hue by exactly 360 degrees,
// so wrapping at it is invisible for any multiplier.
func (e *RainbowPlane) period() float64 {
	return 360 / e.Multiplier
}

func (e *RainbowPlane) Update(delta float64, _ []pixel.Pixel) {
	p := e.period()
	e.Offset = math.Mod(e.Offset+e.Speed*delta, p)
	if e.Offset < 0 {
		e.Offset += p
	}
}

func (e *RainbowPlane) Render(pixels []pixel.Pixel) {
	n := e.Normal.Normalize()
	for i := range pixels {
		d := pixels[i].Position.Dot(n) - e.Offset
		pixels[i].Colour = color.New(e.Multiplier*d, 1, 1)
	}
}

func (e *RainbowPlane) HandleKey(key string) bool {
	if d, ok := twoSpeed(key, 5, 10); ok {
		nudge(&e.Speed, d, -1000, 1000)
		return true
	}
	switch key {
	case "up":
		nudge(&e.Multiplier, 0.1, 0.1, 20)
	case "down":
		nudge(&e.Multiplier, -0.1, 0.1, 20)
	default:
		return false
	}
	return true
}

func (e *RainbowPlane) Params() []Param {
	return []Param{
		{Label: "Movement Speed", Value: fmtf("%4.0f", e.Speed), Down: "j/J", Up: "k/K"},
		{Label: "Multiplier", Value: fmtf("%2.1f", e.Multiplier), Down: "down", Up: "up"},
	}
}

func (e *RainbowPlane) tunables() []tunable {
	return []tunable{
		{"movement_speed", &e.Speed, -1000, 1000},
		{"multiplier", &e.Multiplier, 0.1, 20},
	}
}

func (e *RainbowPlane) Persist(src settings.Source) {
	persistTunables(src, e.Kind().Section(), e.tunables())
}

func (e *RainbowPlane) Restore(src settings.Source) error {
	return restoreTunables(src, e.Kind().Section(), e.tunables())
}
