package statmech

import (
	"errors"
	"fmt"
)

// Domain errors for statmech operations.
var (
	// ErrDomain indicates an input outside the domain of an operation:
	// negative quantum numbers, non-positive temperatures, negative or
	// unordered energy grids, non-positive inertia or symmetry numbers.
	ErrDomain = errors.New("statmech: input out of domain")

	// ErrEncoding indicates a text or binary rotor encoding that cannot be decoded.
	ErrEncoding = errors.New("statmech: malformed rotor encoding")
)

// DomainError records the operation and the offending input.
type DomainError struct {
	Op    string
	Param string
	Value float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("statmech: %s: %s = %g out of domain", e.Op, e.Param, e.Value)
}

func (e *DomainError) Unwrap() error {
	return ErrDomain
}

func domainErr(op, param string, value float64) error {
	return &DomainError{Op: op, Param: param, Value: value}
}
