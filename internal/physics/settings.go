package physics

import "gonum.org/v1/gonum/spatial/r2"

// EarthGravity is the default downward acceleration in pixels/s²
// (screen y grows downward).
var EarthGravity = r2.Vec{X: 0, Y: 980.7}

// Settings is the configuration the solver reads once per Advance.
type Settings struct {
	Gravity       r2.Vec
	CenterGravity bool
	Center        r2.Vec
	Strength      float64
	// Bounds may be nil for an unconstrained world.
	Bounds Boundary
}

// GravityModel selects the active gravity strategy.
func (s Settings) GravityModel() Gravity {
	if s.CenterGravity {
		return CenterSeeking{Center: s.Center, Strength: s.Strength}
	}
	return Uniform{Vector: s.Gravity}
}

// ToggleCenter returns a copy with the gravity mode flipped.
func (s Settings) ToggleCenter() Settings {
	s.CenterGravity = !s.CenterGravity
	return s
}
