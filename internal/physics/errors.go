package physics

import (
	"errors"
	"fmt"
)

// Domain errors for the physics core.
var (
	// ErrInvalidRadius indicates a spawn request with a non-positive radius.
	ErrInvalidRadius = errors.New("physics: body radius must be positive")

	// ErrInvalidStep indicates a non-positive sub-step duration or count.
	ErrInvalidStep = errors.New("physics: dt and sub-steps must be positive")

	// ErrNonFinite indicates a body position became NaN or Inf.
	ErrNonFinite = errors.New("physics: non-finite body position")
)

// BodyError ties an error to the index of the offending body.
type BodyError struct {
	Index   int
	Wrapped error
}

func (e *BodyError) Error() string {
	return fmt.Sprintf("body %d: %v", e.Index, e.Wrapped)
}

func (e *BodyError) Unwrap() error {
	return e.Wrapped
}
