package EdgeFlux1D

import (
	"errors"
	"fmt"
)

// Domain errors wrapped by DomainViolation.
var (
	ErrNonPositiveState = errors.New("EdgeFlux1D: density and temperature must be positive")
	ErrNonFinite        = errors.New("EdgeFlux1D: non-finite value")
	ErrNegativeSqrt     = errors.New("EdgeFlux1D: negative square root operand")
	ErrZeroDenominator  = errors.New("EdgeFlux1D: zero denominator")
	ErrSingularRadius   = errors.New("EdgeFlux1D: cell at the bulk viscosity singular radius x = a_m")
	ErrShapeMismatch    = errors.New("EdgeFlux1D: fields do not match the mesh")
)

// DomainViolation locates an evaluation failure. Cell is -1 when the failure
// is not tied to a single cell.
type DomainViolation struct {
	Channel  string
	Cell     int
	Quantity string
	Value    float64
	Err      error
}

func (e *DomainViolation) Error() string {
	return fmt.Sprintf("%v: channel %s, cell %d, %s = %v", e.Err, e.Channel, e.Cell, e.Quantity, e.Value)
}

func (e *DomainViolation) Unwrap() error {
	return e.Err
}

// StepError wraps a failure of the transport solver with the step context.
type StepError struct {
	Step    int
	Time    float64
	Dt      float64
	Retries int
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d at t = %g (dt = %g, %d retries): %v", e.Step, e.Time, e.Dt, e.Retries, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
