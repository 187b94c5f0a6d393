package effect

import (
	"go-ledfield/color"
	"go-ledfield/pixel"
	"go-ledfield/settings"
)

// SolidColour paints every pixel the same colour.
type SolidColour struct {
	Colour color.HSV
}

func DefaultSolidColour() *SolidColour {
	return &SolidColour{Colour: color.Cyan}
}

func (e *SolidColour) Kind() Kind { return KindSolidColour }

func (e *SolidColour) Update(float64, []pixel.Pixel) {}

func (e *SolidColour) Render(pixels []pixel.Pixel) {
	for i := range pixels {
		pixels[i].Colour = e.Colour
	}
}

func (e *SolidColour) HandleKey(key string) bool {
	c := e.Colour
	switch key {
	case "h":
		c = c.WithHue(c.H + 10)
	case "H":
		c = c.WithHue(c.H - 10)
	case "s":
		c = c.WithSat(c.S + 0.05)
	case "S":
		c = c.WithSat(c.S - 0.05)
	case "v":
		c = c.WithValue(c.V + 0.05)
	case "V":
		c = c.WithValue(c.V - 0.05)
	default:
		return false
	}
	e.Colour = c
	return true
}

func (e *SolidColour) Params() []Param {
	return []Param{
		{Label: "Hue", Value: fmtf("%3.0f", e.Colour.H), Down: "H", Up: "h"},
		{Label: "Saturation", Value: fmtf("%1.2f", e.Colour.S), Down: "S", Up: "s"},
		{Label: "Value", Value: fmtf("%1.2f", e.Colour.V), Down: "V", Up: "v"},
	}
}

func (e *SolidColour) tunables() []tunable {
	return []tunable{
		{"hue", &e.Colour.H, 0, 360},
		{"saturation", &e.Colour.S, 0, 1},
		{"value", &e.Colour.V, 0, 1},
	}
}

func (e *SolidColour) Persist(src settings.Source) {
	persistTunables(src, e.Kind().Section(), e.tunables())
}

func (e *SolidColour) Restore(src settings.Source) error {
	err := restoreTunables(src, e.Kind().Section(), e.tunables())
	e.Colour = color.New(e.Colour.H, e.Colour.S, e.Colour.V)
	return err
}
