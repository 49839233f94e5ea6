package taxconfig

import "errors"

var (
	// ErrConfigurationUnavailable signals that one of the configuration
	// stores could not be read. The engine never computes without a
	// resolved snapshot, so this aborts the whole pipeline.
	ErrConfigurationUnavailable = errors.New("payroll configuration unavailable")

	// ErrUnknownConstantKey signals a payroll_constants row whose key is
	// not part of the recognized ConstantKey set.
	ErrUnknownConstantKey = errors.New("unknown payroll constant key")

	// ErrInvalidConfiguration signals resolved values that violate the
	// snapshot invariants (rate outside [0,1], ceiling below the wage
	// floor, non-contiguous bracket table, unparseable constant value).
	ErrInvalidConfiguration = errors.New("invalid payroll configuration")
)
