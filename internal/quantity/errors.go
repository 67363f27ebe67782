package quantity

import "errors"

var (
	// ErrUnits indicates a unit designator that cannot be parsed.
	ErrUnits = errors.New("quantity: malformed unit designator")

	// ErrDimension indicates a conversion between incompatible dimensions.
	ErrDimension = errors.New("quantity: incompatible dimensions")
)
