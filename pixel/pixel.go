package pixel

import (
	"fmt"

	"go-ledfield/color"
	"go-ledfield/geom"
)

// Pixel is one addressable LED: a fixed position and the colour it shows.
type Pixel struct {
	Position geom.Vec3
	Colour   color.HSV
}

func (p Pixel) String() string {
	return fmt.Sprintf("%s | %s", p.Position, p.Colour)
}

// NewBuffer allocates count pixels at the origin, all black.
func NewBuffer(count int) []Pixel {
	return make([]Pixel, count)
}
