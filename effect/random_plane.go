package effect

import (
	"math"
	"math/rand/v2"

	"go-ledfield/color"
	"go-ledfield/geom"
	"go-ledfield/pixel"
	"go-ledfield/settings"
)

// Trail values below this snap to black.
const trailSnap = 0.1

// RandomMovingPlane fires planes from random points around the fixture
// through its centre. Pixels the plane has left fade out geometrically.
type RandomMovingPlane struct {
	plane
	Hue       float64
	Speed     float64
	Threshold float64 // half thickness of the lit slab
	Decay     float64

	bounds geom.Box
	rng    *rand.Rand
	trail  []color.HSV
}

func DefaultRandomMovingPlane(env Env) *RandomMovingPlane {
	e := &RandomMovingPlane{
		Speed:     90,
		Threshold: 30,
		Decay:     0.9,
		bounds:    env.Bounds,
		rng:       env.Rand,
	}
	e.Hue = nextHue(e.rng, 0)
	e.respawn()
	return e
}

func (e *RandomMovingPlane) Kind() Kind { return KindRandomMovingPlane }

// respawn places the plane on a cylinder around the fixture aimed at its centre.
func (e *RandomMovingPlane) respawn() {
	size := e.bounds.Size()
	center := e.bounds.Center()
	radius := math.Max(size.X, size.Z) + e.Threshold

	phi := e.rng.Float64() * 2 * math.Pi
	e.Pos = geom.V(
		center.X+radius*math.Cos(phi),
		e.bounds.Min.Y+e.rng.Float64()*size.Y,
		center.Z+radius*math.Sin(phi),
	)
	e.Normal = center.Sub(e.Pos).Normalize()
}

func (e *RandomMovingPlane) lit(p geom.Vec3) bool {
	return math.Abs(e.distance(p)) < e.Threshold
}

// ensureTrail seeds the fade state from whatever the buffer last showed.
func (e *RandomMovingPlane) ensureTrail(pixels []pixel.Pixel) {
	if len(e.trail) == len(pixels) {
		return
	}
	e.trail = make([]color.HSV, len(pixels))
	for i := range pixels {
		e.trail[i] = pixels[i].Colour
	}
}

func (e *RandomMovingPlane) Update(delta float64, pixels []pixel.Pixel) {
	e.ensureTrail(pixels)

	lit := color.New(e.Hue, 1, 1)
	for i := range pixels {
		if e.lit(pixels[i].Position) {
			e.trail[i] = lit
			continue
		}
		v := e.trail[i].V * e.Decay
		if v < trailSnap {
			v = 0
		}
		e.trail[i] = e.trail[i].WithValue(v)
	}

	e.Pos = e.Pos.Add(e.Normal.Mul(e.Speed * delta))

	if e.Normal.Dot(e.bounds.Center().Sub(e.Pos)) >= 0 {
		return
	}
	for i := range pixels {
		if e.lit(pixels[i].Position) {
			return
		}
	}
	e.Hue = nextHue(e.rng, e.Hue)
	e.respawn()
}

func (e *RandomMovingPlane) Render(pixels []pixel.Pixel) {
	e.ensureTrail(pixels)

	lit := color.New(e.Hue, 1, 1)
	for i := range pixels {
		if e.lit(pixels[i].Position) {
			pixels[i].Colour = lit
		} else {
			pixels[i].Colour = e.trail[i]
		}
	}
}

func (e *RandomMovingPlane) HandleKey(key string) bool {
	if d, ok := twoSpeed(key, 5, 10); ok {
		nudge(&e.Speed, d, 0, 1000)
		return true
	}
	switch key {
	case "up":
		nudge(&e.Threshold, 1, 1, 200)
	case "down":
		nudge(&e.Threshold, -1, 1, 200)
	case "n":
		nudge(&e.Decay, -0.01, 0, 1)
	case "m":
		nudge(&e.Decay, 0.01, 0, 1)
	default:
		return false
	}
	return true
}

func (e *RandomMovingPlane) Params() []Param {
	return []Param{
		{Label: "Movement Speed", Value: fmtf("%3.0f", e.Speed), Down: "j/J", Up: "k/K"},
		{Label: "Distance", Value: fmtf("%3.0f", e.Threshold), Down: "down", Up: "up"},
		{Label: "Decay", Value: fmtf("%1.2f", e.Decay), Down: "n", Up: "m"},
	}
}

func (e *RandomMovingPlane) tunables() []tunable {
	return []tunable{
		{"movement_speed", &e.Speed, 0, 1000},
		{"distance", &e.Threshold, 1, 200},
		{"decay", &e.Decay, 0, 1},
	}
}

func (e *RandomMovingPlane) Persist(src settings.Source) {
	persistTunables(src, e.Kind().Section(), e.tunables())
}

func (e *RandomMovingPlane) Restore(src settings.Source) error {
	return restoreTunables(src, e.Kind().Section(), e.tunables())
}

// nextHue shifts hue by a random 60..300 degrees so consecutive colours
// never land close together.
func nextHue(rng *rand.Rand, hue float64) float64 {
	return color.WrapHue(hue + 60 + math.Round(rng.Float64()*240))
}
