package metrics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/NotAF0e/Gravitonic/internal/physics"
)

// Overlap reports the worst penetration depth left between any two bodies
// after a frame. It is zero when the sub-steps fully separated every pair.
type Overlap struct {
	name string
	max  float64
}

func NewOverlap() *Overlap {
	return &Overlap{name: "max_overlap"}
}

func (o *Overlap) Name() string { return o.name }

func (o *Overlap) Observe(s *physics.Store, frame int) {
	bodies := s.Bodies()
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			d := r2.Norm(r2.Sub(bodies[i].Current, bodies[j].Current))
			o.max = math.Max(o.max, bodies[i].Radius+bodies[j].Radius-d)
		}
	}
}

func (o *Overlap) Value() float64 { return o.max }

func (o *Overlap) Reset() { o.max = 0 }
