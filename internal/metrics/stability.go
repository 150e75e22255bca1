package metrics

import "github.com/NotAF0e/Gravitonic/internal/physics"

// Containment is the fraction of observed frames in which every body sat
// inside the boundary. A nil boundary always counts as contained.
type Containment struct {
	name       string
	bounds     physics.Boundary
	violations int
	samples    int
}

func NewContainment(bounds physics.Boundary) *Containment {
	return &Containment{
		name:   "containment",
		bounds: bounds,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(s *physics.Store, frame int) {
	c.samples++
	if c.bounds == nil {
		return
	}
	for _, b := range s.Bodies() {
		if !c.bounds.Contains(b) {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
