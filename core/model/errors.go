package model

import "errors"

var (
	// ErrConfiguration reports malformed reference tables, step counts that do
	// not divide evenly or unknown mode strings. It is raised before any
	// sampling takes place.
	ErrConfiguration = errors.New("configuration error")

	// ErrDivideByZero is returned when a curve cannot be normalized because all
	// of its values are zero.
	ErrDivideByZero = errors.New("divide by zero")

	// ErrDistributionInfeasible is returned when the Gaussian retry budget is
	// exhausted and clamping negative draws shifts the mean beyond tolerance.
	ErrDistributionInfeasible = errors.New("distribution infeasible")

	// ErrAllocationExhausted is returned when draw-off events cannot all be
	// placed on the timestep grid.
	ErrAllocationExhausted = errors.New("allocation exhausted")
)
