// Package quantity converts physical values with unit designators to and
// from SI.
package quantity

import (
	"fmt"
	"strconv"
)

// Quantity is a value together with the unit designator it was given in.
type Quantity struct {
	Value float64 `yaml:"value" json:"value"`
	Units string  `yaml:"units" json:"units"`
}

func New(value float64, units string) Quantity {
	return Quantity{Value: value, Units: units}
}

// SI returns the value expressed in SI base units.
func (q Quantity) SI() (float64, error) {
	u, err := ParseUnits(q.Units)
	if err != nil {
		return 0, err
	}
	return q.Value * u.Factor, nil
}

// Dimension returns the dimension of the quantity's units.
func (q Quantity) Dimension() (Dimension, error) {
	u, err := ParseUnits(q.Units)
	if err != nil {
		return Dimension{}, err
	}
	return u.Dimension, nil
}

// SIAs is SI with a dimension check.
func (q Quantity) SIAs(dim Dimension) (float64, error) {
	u, err := ParseUnits(q.Units)
	if err != nil {
		return 0, err
	}
	if u.Dimension != dim {
		return 0, fmt.Errorf("%w: %q is %s, want %s", ErrDimension, q.Units, u.Dimension, dim)
	}
	return q.Value * u.Factor, nil
}

// FromSI expresses an SI value in the given units.
func FromSI(si float64, units string) (Quantity, error) {
	u, err := ParseUnits(units)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: si / u.Factor, Units: units}, nil
}

// Convert re-expresses q in other units of the same dimension.
func (q Quantity) Convert(units string) (Quantity, error) {
	from, err := ParseUnits(q.Units)
	if err != nil {
		return Quantity{}, err
	}
	to, err := ParseUnits(units)
	if err != nil {
		return Quantity{}, err
	}
	if from.Dimension != to.Dimension {
		return Quantity{}, fmt.Errorf("%w: %q to %q", ErrDimension, q.Units, units)
	}
	return Quantity{Value: q.Value * from.Factor / to.Factor, Units: units}, nil
}

func (q Quantity) String() string {
	v := strconv.FormatFloat(q.Value, 'g', -1, 64)
	if q.Units == "" {
		return v
	}
	return v + " " + q.Units
}
