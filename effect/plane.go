package effect

import (
	"math"

	"go-ledfield/color"
	"go-ledfield/geom"
	"go-ledfield/pixel"
	"go-ledfield/settings"
)

// plane is an infinite plane through Pos facing Normal. Normal must be non-zero.
type plane struct {
	Pos    geom.Vec3
	Normal geom.Vec3
}

// distance is the signed distance of v from the plane along its normal.
func (p plane) distance(v geom.Vec3) float64 {
	return v.Sub(p.Pos).Dot(p.Normal) / p.Normal.Mag()
}

// blend maps a signed distance scaled by coef from [-1,1] onto [0,1] and
// picks the colour between c1 and c2 at that fraction.
func blend(d, coef float64, c1, c2 color.HSV) color.HSV {
	f := math.Max(0, math.Min(1, (d/coef+1)/2))
	return color.Lerp(c1, c2, f)
}

// StationaryPlane colours pixels by their signed distance from a fixed plane.
type StationaryPlane struct {
	plane
	From, To     color.HSV
	DistanceCoef float64
}

func NewStationaryPlane(pos, normal geom.Vec3, from, to color.HSV, coef float64) *StationaryPlane {
	return &StationaryPlane{
		plane:        plane{Pos: pos, Normal: normal},
		From:         from,
		To:           to,
		DistanceCoef: coef,
	}
}

func DefaultStationaryPlane(env Env) *StationaryPlane {
	coef := math.Max(1, env.Bounds.Size().Y/2)
	return NewStationaryPlane(env.Bounds.Center(), geom.V(0, 1, 0), color.Blue, color.Red, coef)
}

func (e *StationaryPlane) Kind() Kind { return KindStationaryPlane }

func (e *StationaryPlane) Update(float64, []pixel.Pixel) {}

func (e *StationaryPlane) Render(pixels []pixel.Pixel) {
	for i := range pixels {
		pixels[i].Colour = blend(e.distance(pixels[i].Position), e.DistanceCoef, e.From, e.To)
	}
}

func (e *StationaryPlane) HandleKey(key string) bool {
	if d, ok := twoSpeed(key, 5, 10); ok {
		nudge(&e.DistanceCoef, d, 1, 1000)
		return true
	}
	switch key {
	case "h":
		e.From, e.To = e.From.WithHue(e.From.H+10), e.To.WithHue(e.To.H+10)
	case "H":
		e.From, e.To = e.From.WithHue(e.From.H-10), e.To.WithHue(e.To.H-10)
	default:
		return false
	}
	return true
}

func (e *StationaryPlane) Params() []Param {
	return []Param{
		{Label: "Distance", Value: fmtf("%4.0f", e.DistanceCoef), Down: "j/J", Up: "k/K"},
		{Label: "Hue", Value: fmtf("%3.0f", e.From.H) + " → " + fmtf("%3.0f", e.To.H), Down: "H", Up: "h"},
	}
}

func (e *StationaryPlane) tunables() []tunable {
	return []tunable{
		{"distance_coef", &e.DistanceCoef, 1, 1000},
		{"hue_from", &e.From.H, 0, 360},
		{"hue_to", &e.To.H, 0, 360},
	}
}

func (e *StationaryPlane) Persist(src settings.Source) {
	persistTunables(src, e.Kind().Section(), e.tunables())
}

func (e *StationaryPlane) Restore(src settings.Source) error {
	err := restoreTunables(src, e.Kind().Section(), e.tunables())
	e.From, e.To = e.From.WithHue(e.From.H), e.To.WithHue(e.To.H)
	return err
}

// MovingPlane sweeps a plane along its normal and bounces off the fixture
// bounds. A bounce reverses Dir only; Normal keeps its orientation so the
// gradient does not flip.
type MovingPlane struct {
	plane
	From, To     color.HSV
	DistanceCoef float64
	Speed        float64
	Dir          float64 // +1 along Normal, -1 against it
	Bounds       geom.Box
}

func DefaultMovingPlane(env Env) *MovingPlane {
	start := env.Bounds.Center()
	start.Y = env.Bounds.Min.Y
	return &MovingPlane{
		plane:        plane{Pos: start, Normal: geom.V(0, 1, 0)},
		From:         color.White,
		To:           color.Green,
		DistanceCoef: 100,
		Speed:        100,
		Dir:          1,
		Bounds:       env.Bounds,
	}
}

func (e *MovingPlane) Kind() Kind { return KindMovingPlane }

func (e *MovingPlane) Update(delta float64, _ []pixel.Pixel) {
	step := e.Normal.Normalize().Mul(e.Dir * e.Speed * delta)
	pos := e.Pos.Add(step)

	if !e.Bounds.Contains(pos) {
		pos = pos.ClampBox(e.Bounds)
		e.Dir = -e.Dir
	}
	e.Pos = pos
}

func (e *MovingPlane) Render(pixels []pixel.Pixel) {
	for i := range pixels {
		pixels[i].Colour = blend(e.distance(pixels[i].Position), e.DistanceCoef, e.From, e.To)
	}
}

func (e *MovingPlane) HandleKey(key string) bool {
	if d, ok := twoSpeed(key, 5, 10); ok {
		nudge(&e.Speed, d, 0, 1000)
		return true
	}
	switch key {
	case "up":
		nudge(&e.DistanceCoef, 1, 1, 1000)
	case "down":
		nudge(&e.DistanceCoef, -1, 1, 1000)
	default:
		return false
	}
	return true
}

func (e *MovingPlane) Params() []Param {
	return []Param{
		{Label: "Movement Speed", Value: fmtf("%3.0f", e.Speed), Down: "j/J", Up: "k/K"},
		{Label: "Distance", Value: fmtf("%4.0f", e.DistanceCoef), Down: "down", Up: "up"},
	}
}

func (e *MovingPlane) tunables() []tunable {
	return []tunable{
		{"movement_speed", &e.Speed, 0, 1000},
		{"distance_coef", &e.DistanceCoef, 1, 1000},
	}
}

func (e *MovingPlane) Persist(src settings.Source) {
	persistTunables(src, e.Kind().Section(), e.tunables())
}

func (e *MovingPlane) Restore(src settings.Source) error {
	return restoreTunables(src, e.Kind().Section(), e.tunables())
}
