package sim

import (
	"fmt"

	"github.com/NotAF0e/Gravitonic/internal/physics"
)

// Frame is a recorded copy of the store after a frame was advanced.
type Frame struct {
	Index  int
	Time   float64
	Bodies []physics.Body
}

// Result collects what a headless run produced.
type Result struct {
	Frames    []Frame
	Counts    []int
	Energy    []float64
	Metrics   map[string]float64
	FramesRun int
	SubSteps  int
	Spawned   int
	Errors    []error
}

// Observer is notified after every frame.
type Observer interface {
	OnFrame(frame int, t float64, s *physics.Store)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(frame int, t float64, s *physics.Store)

func (f ObserverFunc) OnFrame(frame int, t float64, s *physics.Store) { f(frame, t, s) }

// FrameError wraps an error with the frame it happened on.
type FrameError struct {
	Frame   int
	Time    float64
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d (t=%.4f): %v", e.Frame, e.Time, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
