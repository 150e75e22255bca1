package physics

// Solver composes the passes into sub-steps over a store it owns.
type Solver struct {
	store    *Store
	contacts int
	subSteps int
}

func NewSolver(store *Store) *Solver {
	if store == nil {
		store = NewStore()
	}
	return &Solver{store: store}
}

func (s *Solver) Store() *Store { return s.store }

// Advance runs exactly subSteps sub-steps of length dt. The caller divides
// the frame time; dt is already per sub-step. Each sub-step applies gravity,
// the boundary, collisions and then integration, in that order.
func (s *Solver) Advance(dt float64, subSteps int, settings Settings) error {
	if !(dt > 0) || subSteps <= 0 {
		return ErrInvalidStep
	}
	s.run(dt, subSteps, settings.GravityModel(), settings.Bounds)
	return nil
}

func (s *Solver) run(dt float64, subSteps int, gravity Gravity, bounds Boundary) {
	s.contacts = 0
	for i := 0; i < subSteps; i++ {
		s.step(dt, gravity, bounds)
	}
	s.subSteps += subSteps
}

func (s *Solver) step(dt float64, gravity Gravity, bounds Boundary) {
	gravity.Apply(s.store)
	if bounds != nil {
		bounds.Constrain(s.store)
	}
	s.contacts += ResolveCollisions(s.store)
	s.store.Integrate(dt)
}

// Contacts returns the overlapping pairs corrected during the last Advance,
// summed over its sub-steps.
func (s *Solver) Contacts() int { return s.contacts }

// SubSteps returns the total sub-steps run since creation.
func (s *Solver) SubSteps() int { return s.subSteps }
