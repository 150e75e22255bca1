package physics

// Store is the ordered, growable body collection. Bodies are never removed.
type Store struct {
	bodies []Body
}

func NewStore() *Store {
	return &Store{bodies: make([]Body, 0, 64)}
}

// Spawn appends a body at rest at req.Position.
func (s *Store) Spawn(req SpawnRequest) error {
	if !(req.Radius > 0) {
		return ErrInvalidRadius
	}
	s.bodies = append(s.bodies, Body{
		Radius:  req.Radius,
		Current: req.Position,
		Old:     req.Position,
		Color:   req.Color,
	})
	return nil
}

func (s *Store) Len() int { return len(s.bodies) }

// At returns a mutable handle to body i.
func (s *Store) At(i int) *Body { return &s.bodies[i] }

// Bodies exposes the backing slice for readback. Callers must not append to
// it or hold it across an Advance.
func (s *Store) Bodies() []Body { return s.bodies }

// Each calls fn with a mutable handle to every body in insertion order.
func (s *Store) Each(fn func(*Body)) {
	for i := range s.bodies {
		fn(&s.bodies[i])
	}
}

// Pair returns mutable handles to two distinct bodies, i < j.
func (s *Store) Pair(i, j int) (*Body, *Body) {
	if i >= j {
		panic("physics: Pair requires i < j")
	}
	head, tail := s.bodies[:j], s.bodies[j:]
	return &head[i], &tail[0]
}

// Snapshot returns a copy of the bodies.
func (s *Store) Snapshot() []Body {
	out := make([]Body, len(s.bodies))
	copy(out, s.bodies)
	return out
}

// Validate returns a *BodyError wrapping ErrNonFinite for the first body
// holding a NaN or Inf position.
func (s *Store) Validate() error {
	for i := range s.bodies {
		if !s.bodies[i].IsFinite() {
			return &BodyError{Index: i, Wrapped: ErrNonFinite}
		}
	}
	return nil
}
