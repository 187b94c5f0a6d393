package effect

import (
	"math/rand/v2"

	"go-ledfield/color"
	"go-ledfield/geom"
	"go-ledfield/pixel"
	"go-ledfield/settings"
)

// ExpandingCircle grows a sphere of colour from the fixture centre. Once it
// has swallowed every pixel it starts again with a new hue, painting over
// the previous one.
type ExpandingCircle struct {
	Center   geom.Vec3
	Radius   float64
	Speed    float64
	Colour   color.HSV
	Previous color.HSV

	rng *rand.Rand
}

func DefaultExpandingCircle(env Env) *ExpandingCircle {
	e := &ExpandingCircle{
		Center:   env.Bounds.Center(),
		Speed:    50,
		Previous: color.Black,
		rng:      env.Rand,
	}
	e.Colour = color.New(nextHue(e.rng, 0), 1, 1)
	return e
}

func (e *ExpandingCircle) Kind() Kind { return KindExpandingCircle }

func (e *ExpandingCircle) inside(p geom.Vec3) bool {
	return p.Sub(e.Center).Mag() < e.Radius
}

func (e *ExpandingCircle) Update(delta float64, pixels []pixel.Pixel) {
	e.Radius += e.Speed * delta

	for i := range pixels {
		if !e.inside(pixels[i].Position) {
			return
		}
	}

	e.Previous = e.Colour
	e.Colour = e.Colour.WithHue(nextHue(e.rng, e.Colour.H))
	e.Radius = 0
}

func (e *ExpandingCircle) Render(pixels []pixel.Pixel) {
	for i := range pixels {
		if e.inside(pixels[i].Position) {
			pixels[i].Colour = e.Colour
		} else {
			pixels[i].Colour = e.Previous
		}
	}
}

func (e *ExpandingCircle) HandleKey(key string) bool {
	d, ok := twoSpeed(key, 5, 10)
	if !ok {
		return false
	}
	nudge(&e.Speed, d, 0, 1000)
	return true
}

func (e *ExpandingCircle) Params() []Param {
	return []Param{
		{Label: "Expansion Speed", Value: fmtf("%3.0f", e.Speed), Down: "j/J", Up: "k/K"},
	}
}

func (e *ExpandingCircle) tunables() []tunable {
	return []tunable{{"expansion_speed", &e.Speed, 0, 1000}}
}

func (e *ExpandingCircle) Persist(src settings.Source) {
	persistTunables(src, e.Kind().Section(), e.tunables())
}

func (e *ExpandingCircle) Restore(src settings.Source) error {
	return restoreTunables(src, e.Kind().Section(), e.tunables())
}
