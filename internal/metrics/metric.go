package metrics

import "github.com/NotAF0e/Gravitonic/internal/physics"

// Metric observes the store once per frame, after Advance returns.
type Metric interface {
	Name() string
	Observe(s *physics.Store, frame int)
	Value() float64
	Reset()
}

// Defaults returns the metrics recorded by headless runs.
func Defaults(dt float64, bounds physics.Boundary) []Metric {
	return []Metric{
		NewKineticEnergy(dt),
		NewMaxSpeed(dt),
		NewOverlap(),
		NewContainment(bounds),
	}
}
