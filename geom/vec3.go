package geom

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Vec3 is an immutable 3D vector; every operation returns a new value.
type Vec3 struct {
	X, Y, Z float64
}

// V is shorthand for Vec3{x, y, z}
func V(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) vec() r3.Vector { return r3.Vector(v) }

func (v Vec3) Dot(o Vec3) float64 { return v.vec().Dot(o.vec()) }

func (v Vec3) Add(o Vec3) Vec3 { return Vec3(v.vec().Add(o.vec())) }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3(v.vec().Sub(o.vec())) }

func (v Vec3) Mul(s float64) Vec3 { return Vec3(v.vec().Mul(s)) }

// Mag returns the euclidean length sqrt(v·v).
func (v Vec3) Mag() float64 { return v.vec().Norm() }

// Normalize scales v to unit length. The zero vector yields NaN components;
// callers must not pass it.
func (v Vec3) Normalize() Vec3 {
	return v.Mul(1 / v.Mag())
}

// Clamp limits every component to [lo, hi].
func (v Vec3) Clamp(lo, hi float64) Vec3 {
	return Vec3{clamp(v.X, lo, hi), clamp(v.Y, lo, hi), clamp(v.Z, lo, hi)}
}

// ClampBox limits every component to the matching extent of b.
func (v Vec3) ClampBox(b Box) Vec3 {
	return Vec3{
		clamp(v.X, b.Min.X, b.Max.X),
		clamp(v.Y, b.Min.Y, b.Max.Y),
		clamp(v.Z, b.Min.Z, b.Max.Z),
	}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
