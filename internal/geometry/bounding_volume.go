package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Sentinel used to seed an empty box, any real vertex coordinate replaces it
const emptyBoxSentinel = 1e38

// Axis aligned box enclosing a tile's geometry, expressed in tile local coordinates (Z up)
type BoundingVolume struct {
	Min r3.Vec
	Max r3.Vec
}

// Builds a box seeded with inverted sentinels, so that the first Extend call sets both corners
func NewEmptyBoundingVolume() BoundingVolume {
	return BoundingVolume{
		Min: r3.Vec{X: emptyBoxSentinel, Y: emptyBoxSentinel, Z: emptyBoxSentinel},
		Max: r3.Vec{X: -emptyBoxSentinel, Y: -emptyBoxSentinel, Z: -emptyBoxSentinel},
	}
}

func NewBoundingVolume(min, max r3.Vec) BoundingVolume {
	return BoundingVolume{Min: min, Max: max}
}

// True if no point has been added to the box yet
func (b BoundingVolume) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Grows the box to include the given point
func (b *BoundingVolume) Extend(p r3.Vec) {
	b.Min = r3.Vec{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)}
	b.Max = r3.Vec{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)}
}

// Componentwise min of the minimums and max of the maximums. An empty box is the identity.
func Merge(a, b BoundingVolume) BoundingVolume {
	if a.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return a
	}
	return BoundingVolume{
		Min: r3.Vec{X: math.Min(a.Min.X, b.Min.X), Y: math.Min(a.Min.Y, b.Min.Y), Z: math.Min(a.Min.Z, b.Min.Z)},
		Max: r3.Vec{X: math.Max(a.Max.X, b.Max.X), Y: math.Max(a.Max.Y, b.Max.Y), Z: math.Max(a.Max.Z, b.Max.Z)},
	}
}

// Folds the given boxes left to right into the first one
func MergeAll(first BoundingVolume, others ...BoundingVolume) BoundingVolume {
	merged := first
	for _, other := range others {
		merged = Merge(merged, other)
	}
	return merged
}

// True if other lies entirely inside b (boundaries included)
func (b BoundingVolume) Contains(other BoundingVolume) bool {
	return b.Min.X <= other.Min.X && b.Min.Y <= other.Min.Y && b.Min.Z <= other.Min.Z &&
		b.Max.X >= other.Max.X && b.Max.Y >= other.Max.Y && b.Max.Z >= other.Max.Z
}

func (b BoundingVolume) Center() r3.Vec {
	return r3.Vec{
		X: (b.Min.X + b.Max.X) / 2,
		Y: (b.Min.Y + b.Max.Y) / 2,
		Z: (b.Min.Z + b.Max.Z) / 2,
	}
}

// Half of the box extent along each axis
func (b BoundingVolume) HalfAxes() r3.Vec {
	return r3.Vec{
		X: (b.Max.X - b.Min.X) / 2,
		Y: (b.Max.Y - b.Min.Y) / 2,
		Z: (b.Max.Z - b.Min.Z) / 2,
	}
}

// Largest extent of the box along any axis
func (b BoundingVolume) MaxExtent() float64 {
	return math.Max(b.Max.X-b.Min.X, math.Max(b.Max.Y-b.Min.Y, b.Max.Z-b.Min.Z))
}

// Returns the box in the 3D Tiles "box" layout: center followed by the x, y and z half-axis vectors
func (b BoundingVolume) Box() [12]float64 {
	c := b.Center()
	h := b.HalfAxes()
	return [12]float64{
		c.X, c.Y, c.Z,
		h.X, 0, 0,
		0, h.Y, 0,
		0, 0, h.Z,
	}
}
