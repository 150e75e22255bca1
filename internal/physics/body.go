package physics

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Body is a circular particle. Velocity is never stored: it is recovered
// from Current - Old by the integrator.
type Body struct {
	Radius       float64
	Current      r2.Vec
	Old          r2.Vec
	Acceleration r2.Vec
	Color        color.RGBA
}

// Velocity returns the implicit per-sub-step displacement.
func (b Body) Velocity() r2.Vec {
	return r2.Sub(b.Current, b.Old)
}

// Accelerate adds acc to the acceleration accumulator.
func (b *Body) Accelerate(acc r2.Vec) {
	b.Acceleration = r2.Add(b.Acceleration, acc)
}

// IsFinite reports whether both positions are free of NaN and Inf.
func (b Body) IsFinite() bool {
	for _, v := range [...]float64{b.Current.X, b.Current.Y, b.Old.X, b.Old.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// SpawnRequest describes a body to append to the store.
type SpawnRequest struct {
	Position r2.Vec
	Radius   float64
	Color    color.RGBA
}

// FallbackAxis is the separation direction used when two centres coincide.
var FallbackAxis = r2.Vec{X: 1, Y: 0}

// unit returns v normalised together with its length. A zero vector yields
// ok == false and a zero direction.
func unit(v r2.Vec) (dir r2.Vec, length float64, ok bool) {
	length = r2.Norm(v)
	if length == 0 {
		return r2.Vec{}, 0, false
	}
	return r2.Scale(1/length, v), length, true
}
