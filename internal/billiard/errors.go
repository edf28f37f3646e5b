package billiard

import "errors"

// Precondition errors. These report programmer mistakes at the entry
// point that violates them; they are never produced by physical
// outcomes, which use +Inf/-1/nil sentinels instead.
var (
	// ErrBallIndex indicates a ball index outside [0, Len()).
	ErrBallIndex = errors.New("billiard: ball index out of range")

	// ErrNotFinite indicates a NaN or infinite coordinate, velocity or
	// time where a finite value is required.
	ErrNotFinite = errors.New("billiard: value must be finite")

	// ErrRadius indicates a negative or non-finite ball radius.
	ErrRadius = errors.New("billiard: radius must be finite and non-negative")

	// ErrMass indicates a mass outside (0, +Inf].
	ErrMass = errors.New("billiard: mass must be positive or +Inf")

	// ErrTimeReversal indicates an evolve target before the current
	// simulation time.
	ErrTimeReversal = errors.New("billiard: end time before current time")
)
