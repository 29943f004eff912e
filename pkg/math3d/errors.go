package math3d

import "errors"

var (
	// ErrDegenerateVector is returned when a vector too short to normalize
	// is asked for its direction.
	ErrDegenerateVector = errors.New("math3d: degenerate vector")

	// ErrInvalidAxis is returned when a rotation axis has (near) zero length.
	ErrInvalidAxis = errors.New("math3d: invalid rotation axis")

	// ErrDivideByZero is returned when a derivation would divide by a value
	// whose magnitude is below Epsilon.
	ErrDivideByZero = errors.New("math3d: divide by zero")
)
