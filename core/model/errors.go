package model

import "errors"

var (
	// ErrInvalidArgument is returned when a numeric parameter is outside its allowed range.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInfeasibleConfiguration is returned when a combination of construction
	// parameters is rejected, e.g. an overweighted lorry.
	ErrInfeasibleConfiguration = errors.New("infeasible configuration")
	// ErrCapacityExceeded is returned when the liquid amount cannot cover the requested distance.
	ErrCapacityExceeded = errors.New("capacity exceeded")
	// ErrInvalidState is returned when the vehicle state does not allow the operation.
	ErrInvalidState = errors.New("invalid state")
)
