package physics

import "gonum.org/v1/gonum/spatial/r2"

// Target names the body field a gravity strategy writes to.
type Target int

const (
	// TargetAcceleration strategies feed the integrator's accumulator.
	TargetAcceleration Target = iota
	// TargetPosition strategies displace Current directly, bypassing the
	// integrator's force model.
	TargetPosition
)

func (t Target) String() string {
	switch t {
	case TargetAcceleration:
		return "acceleration"
	case TargetPosition:
		return "position"
	default:
		return "unknown"
	}
}

// Gravity is one of the mutually exclusive gravity modes.
type Gravity interface {
	Apply(s *Store)
	Target() Target
	Name() string
}

// Uniform adds a constant vector to every body's acceleration.
type Uniform struct {
	Vector r2.Vec
}

func (u Uniform) Target() Target { return TargetAcceleration }
func (u Uniform) Name() string   { return "uniform" }

func (u Uniform) Apply(s *Store) {
	for i := range s.bodies {
		s.bodies[i].Accelerate(u.Vector)
	}
}

// CenterSeeking moves every body Strength units toward Center. A body sitting
// exactly on Center is left in place.
type CenterSeeking struct {
	Center   r2.Vec
	Strength float64
}

func (c CenterSeeking) Target() Target { return TargetPosition }
func (c CenterSeeking) Name() string   { return "center" }

func (c CenterSeeking) Apply(s *Store) {
	for i := range s.bodies {
		b := &s.bodies[i]
		dir, _, ok := unit(r2.Sub(c.Center, b.Current))
		if !ok {
			continue
		}
		b.Current = r2.Add(b.Current, r2.Scale(c.Strength, dir))
	}
}
