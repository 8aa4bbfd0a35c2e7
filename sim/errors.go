package sim

import "errors"

// Error taxonomy for the simulation core. All of these indicate
// programming or configuration mistakes and abort the run immediately;
// none is transient or retryable.
var (
	// ErrInvalidConfiguration reports a static parameter outside its
	// documented bounds. Raised by Config.Validate before any patient
	// is simulated.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidDelay reports a negative or non-finite wait requested of
	// the scheduler. This violates clock monotonicity and indicates a bug
	// in the pathway model, so the run aborts rather than clamping.
	ErrInvalidDelay = errors.New("invalid delay")

	// ErrRandomSource reports a failure of the injected distribution
	// provider. Propagated, never retried: a retry would silently shift
	// the draw sequence and break reproducibility.
	ErrRandomSource = errors.New("random source failure")
)
