package metrics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/NotAF0e/Gravitonic/internal/physics"
)

// KineticEnergy averages, over observed frames, the total specific kinetic
// energy 0.5*|v|² of all bodies. Velocity is recovered from the position
// history and scaled by the sub-step length to units per second.
type KineticEnergy struct {
	name    string
	dt      float64
	last    float64
	total   float64
	samples int
}

func NewKineticEnergy(dt float64) *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy", dt: dt}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(s *physics.Store, frame int) {
	sum := 0.0
	for _, b := range s.Bodies() {
		v := speed(b, e.dt)
		sum += 0.5 * v * v
	}
	e.last = sum
	e.total += sum
	e.samples++
}

// Last returns the energy seen on the most recent frame.
func (e *KineticEnergy) Last() float64 { return e.last }

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *KineticEnergy) Reset() {
	e.last = 0
	e.total = 0
	e.samples = 0
}

// MaxSpeed tracks the fastest body seen over all frames.
type MaxSpeed struct {
	name string
	dt   float64
	max  float64
}

func NewMaxSpeed(dt float64) *MaxSpeed {
	return &MaxSpeed{name: "max_speed", dt: dt}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(s *physics.Store, frame int) {
	for _, b := range s.Bodies() {
		m.max = math.Max(m.max, speed(b, m.dt))
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }

func (m *MaxSpeed) Reset() { m.max = 0 }

func speed(b physics.Body, dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	return r2.Norm(b.Velocity()) / dt
}
