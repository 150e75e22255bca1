package physics

import "gonum.org/v1/gonum/spatial/r2"

// Integrate advances b by one Verlet sub-step of length dt and consumes its
// acceleration. It is the only writer of Old and the only place the
// accumulator is cleared.
func Integrate(b *Body, dt float64) {
	velocity := r2.Sub(b.Current, b.Old)
	b.Old = b.Current
	b.Current = r2.Add(r2.Add(b.Current, velocity), r2.Scale(dt*dt, b.Acceleration))
	b.Acceleration = r2.Vec{}
}

// Integrate runs the Verlet update over every body.
func (s *Store) Integrate(dt float64) {
	for i := range s.bodies {
		Integrate(&s.bodies[i], dt)
	}
}
