package physics

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// Boundary keeps bodies inside an arena by clamping Current.
type Boundary interface {
	Constrain(s *Store)
	Contains(b Body) bool
	Shape() string
}

// Circle is a circular arena. Bodies outside are placed back on the rim
// along the centre-to-body direction; their implicit velocity is left alone.
type Circle struct {
	Center r2.Vec
	Radius float64
}

func (c Circle) Shape() string { return "circle" }

func (c Circle) String() string {
	return fmt.Sprintf("circle(%.1f,%.1f r=%.1f)", c.Center.X, c.Center.Y, c.Radius)
}

func (c Circle) Constrain(s *Store) {
	for i := range s.bodies {
		b := &s.bodies[i]
		limit := c.Radius - b.Radius
		dir, dist, ok := unit(r2.Sub(b.Current, c.Center))
		if dist <= limit {
			continue
		}
		if !ok {
			dir = FallbackAxis
		}
		b.Current = r2.Add(c.Center, r2.Scale(limit, dir))
	}
}

// Contains uses a small tolerance so a body just clamped onto the rim counts
// as inside.
func (c Circle) Contains(b Body) bool {
	return r2.Norm(r2.Sub(b.Current, c.Center)) <= c.Radius-b.Radius+containTolerance
}

// Rect is the viewport rectangle [0, Width] x [0, Height].
type Rect struct {
	Width, Height float64
}

func (r Rect) Shape() string { return "rect" }

func (r Rect) String() string {
	return fmt.Sprintf("rect(%.0fx%.0f)", r.Width, r.Height)
}

func (r Rect) Constrain(s *Store) {
	for i := range s.bodies {
		b := &s.bodies[i]
		b.Current.X = clampAxis(b.Current.X, b.Radius, r.Width)
		b.Current.Y = clampAxis(b.Current.Y, b.Radius, r.Height)
	}
}

func (r Rect) Contains(b Body) bool {
	p := b.Current
	return p.X >= b.Radius-containTolerance && p.X <= r.Width-b.Radius+containTolerance &&
		p.Y >= b.Radius-containTolerance && p.Y <= r.Height-b.Radius+containTolerance
}

// clampAxis checks the lower edge first; when radius exceeds half the
// extent the lower edge wins.
func clampAxis(v, radius, extent float64) float64 {
	if v < radius {
		return radius
	} else if v > extent-radius {
		return extent - radius
	}
	return v
}

const containTolerance = 1e-9
