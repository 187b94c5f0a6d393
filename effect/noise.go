package effect

import (
	"github.com/ojrac/opensimplex-go"

	"go-ledfield/color"
	"go-ledfield/pixel"
	"go-ledfield/settings"
)

// NoiseField drifts hue around a base colour using 4D simplex noise over
// pixel position and time.
type NoiseField struct {
	BaseHue float64
	Spread  float64 // max hue deviation either side of BaseHue
	Scale   float64 // noise units per fixture unit
	Speed   float64

	elapsed float64
	noise   opensimplex.Noise
}

func DefaultNoiseField(env Env) *NoiseField {
	return &NoiseField{
		BaseHue: 200,
		Spread:  90,
		Scale:   0.01,
		Speed:   0.3,
		noise:   opensimplex.NewNormalized(env.Seed),
	}
}

func (e *NoiseField) Kind() Kind { return KindNoiseField }

func (e *NoiseField) Update(delta float64, _ []pixel.Pixel) {
	e.elapsed += delta * e.Speed
}

func (e *NoiseField) Render(pixels []pixel.Pixel) {
	for i := range pixels {
		p := pixels[i].Position.Mul(e.Scale)
		n := e.noise.Eval4(p.X, p.Y, p.Z, e.elapsed)
		pixels[i].Colour = color.New(e.BaseHue+(n*2-1)*e.Spread, 1, 1)
	}
}

func (e *NoiseField) HandleKey(key string) bool {
	if d, ok := twoSpeed(key, 0.05, 0.1); ok {
		nudge(&e.Speed, d, 0, 5)
		return true
	}
	switch key {
	case "up":
		nudge(&e.Scale, 0.001, 0.001, 0.1)
	case "down":
		nudge(&e.Scale, -0.001, 0.001, 0.1)
	case "h":
		e.BaseHue = color.WrapHue(e.BaseHue + 10)
	case "H":
		e.BaseHue = color.WrapHue(e.BaseHue - 10)
	case "n":
		nudge(&e.Spread, -10, 0, 180)
	case "m":
		nudge(&e.Spread, 10, 0, 180)
	default:
		return false
	}
	return true
}

func (e *NoiseField) Params() []Param {
	return []Param{
		{Label: "Speed", Value: fmtf("%1.2f", e.Speed), Down: "j/J", Up: "k/K"},
		{Label: "Scale", Value: fmtf("%1.3f", e.Scale), Down: "down", Up: "up"},
		{Label: "Hue", Value: fmtf("%3.0f", e.BaseHue), Down: "H", Up: "h"},
		{Label: "Spread", Value: fmtf("%3.0f", e.Spread), Down: "n", Up: "m"},
	}
}

func (e *NoiseField) tunables() []tunable {
	return []tunable{
		{"speed", &e.Speed, 0, 5},
		{"scale", &e.Scale, 0.001, 0.1},
		{"base_hue", &e.BaseHue, 0, 360},
		{"spread", &e.Spread, 0, 180},
	}
}

func (e *NoiseField) Persist(src settings.Source) {
	persistTunables(src, e.Kind().Section(), e.tunables())
}

func (e *NoiseField) Restore(src settings.Source) error {
	err := restoreTunables(src, e.Kind().Section(), e.tunables())
	e.BaseHue = color.WrapHue(e.BaseHue)
	return err
}
