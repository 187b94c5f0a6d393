package geom

// Box is an axis-aligned bounding box around the fixture.
type Box struct {
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`
}

// DefaultBox is the volume of the reference fixture, in centimetres
var DefaultBox = Box{
	Min: V(-90, 0, -90),
	Max: V(90, 410, 90),
}

func (b Box) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b Box) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

func (b Box) IsZero() bool {
	return b == Box{}
}

// Contains reports whether v lies inside b, edges included.
func (b Box) Contains(v Vec3) bool {
	return v.X >= b.Min.X && v.X <= b.Max.X &&
		v.Y >= b.Min.Y && v.Y <= b.Max.Y &&
		v.Z >= b.Min.Z && v.Z <= b.Max.Z
}

// Extend grows b so it contains v.
func (b Box) Extend(v Vec3) Box {
	return Box{
		Min: V(min(b.Min.X, v.X), min(b.Min.Y, v.Y), min(b.Min.Z, v.Z)),
		Max: V(max(b.Max.X, v.X), max(b.Max.Y, v.Y), max(b.Max.Z, v.Z)),
	}
}
