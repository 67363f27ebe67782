package statmech

import (
	"fmt"
	"math"

	"github.com/san-kum/statmech/internal/constants"
	"github.com/san-kum/statmech/internal/quantity"
)

const (
	DefaultSymmetry = 1
	// InertiaUnits is the display unit for rotors built from a rotational constant.
	InertiaUnits = "amu*angstrom^2"
	// ConstantUnits is the unit of RotationalConstant.
	ConstantUnits = "cm^-1"
)

// LinearRotor is a rigid linear rotor. Only the moment of inertia is
// stored; the rotational constant is derived from it.
type LinearRotor struct {
	inertia  float64 // kg*m^2
	units    string
	symmetry int

	// Quantum selects the discrete level sums over the classical closed forms.
	Quantum bool
}

type Option func(*LinearRotor)

func WithSymmetry(n int) Option {
	return func(r *LinearRotor) { r.symmetry = n }
}

func WithQuantum(quantum bool) Option {
	return func(r *LinearRotor) { r.Quantum = quantum }
}

func Classical() Option {
	return WithQuantum(false)
}

// NewLinearRotor builds a rotor from a moment of inertia. Defaults are
// symmetry number 1 and a quantum treatment.
func NewLinearRotor(inertia quantity.Quantity, opts ...Option) (*LinearRotor, error) {
	r := &LinearRotor{symmetry: DefaultSymmetry, Quantum: true}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.SetInertia(inertia); err != nil {
		return nil, err
	}
	if err := r.SetSymmetry(r.symmetry); err != nil {
		return nil, err
	}
	return r, nil
}

// NewLinearRotorFromConstant builds a rotor from a rotational constant
// given as a wavenumber, frequency, energy or molar energy.
func NewLinearRotorFromConstant(b quantity.Quantity, opts ...Option) (*LinearRotor, error) {
	r := &LinearRotor{units: InertiaUnits, symmetry: DefaultSymmetry, Quantum: true}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.SetRotationalConstant(b); err != nil {
		return nil, err
	}
	if err := r.SetSymmetry(r.symmetry); err != nil {
		return nil, err
	}
	return r, nil
}

// Inertia returns the moment of inertia in the units it was given in.
func (r *LinearRotor) Inertia() quantity.Quantity {
	q, err := quantity.FromSI(r.inertia, r.units)
	if err != nil {
		return quantity.New(r.inertia, "kg*m^2")
	}
	return q
}

// InertiaSI returns the moment of inertia in kg*m^2.
func (r *LinearRotor) InertiaSI() float64 {
	return r.inertia
}

func (r *LinearRotor) SetInertia(q quantity.Quantity) error {
	si, err := q.SIAs(quantity.Inertia)
	if err != nil {
		return fmt.Errorf("set inertia: %w", err)
	}
	if !(si > 0) || math.IsInf(si, 0) {
		return domainErr("SetInertia", "inertia", q.Value)
	}
	r.inertia = si
	r.units = q.Units
	return nil
}

// RotationalConstant returns B = h/(8*pi^2*c*I) in cm^-1.
func (r *LinearRotor) RotationalConstant() quantity.Quantity {
	return quantity.New(inertiaToConstant(r.inertia), ConstantUnits)
}

// SetRotationalConstant back-solves the moment of inertia from B. The
// display units of the inertia are kept.
func (r *LinearRotor) SetRotationalConstant(b quantity.Quantity) error {
	wn, err := wavenumber(b)
	if err != nil {
		return fmt.Errorf("set rotational constant: %w", err)
	}
	if !(wn > 0) || math.IsInf(wn, 0) {
		return domainErr("SetRotationalConstant", "rotational constant", b.Value)
	}
	r.inertia = constantToInertia(wn)
	if r.units == "" {
		r.units = InertiaUnits
	}
	return nil
}

func (r *LinearRotor) Symmetry() int {
	return r.symmetry
}

func (r *LinearRotor) SetSymmetry(n int) error {
	if n < 1 {
		return domainErr("SetSymmetry", "symmetry", float64(n))
	}
	r.symmetry = n
	return nil
}

// Clone returns an independent copy of r.
func (r *LinearRotor) Clone() *LinearRotor {
	c := *r
	return &c
}

// Equal reports whether both rotors have the same stored fields.
func (r *LinearRotor) Equal(o *LinearRotor) bool {
	return r.inertia == o.inertia && r.units == o.units && r.symmetry == o.symmetry && r.Quantum == o.Quantum
}

// inertiaToConstant and constantToInertia are exact inverses: both apply
// the same factor hbar^2/(2*h*c) = h/(8*pi^2*c), taking the rotational
// energy hbar^2/(2I) to a wavenumber.
func inertiaToConstant(inertia float64) float64 {
	return constantFactor / inertia
}

func constantToInertia(b float64) float64 {
	return constantFactor / b
}

var constantFactor = constants.Hbar * constants.Hbar / (2 * constants.H * constants.CCm)

// wavenumber converts b to cm^-1.
func wavenumber(b quantity.Quantity) (float64, error) {
	dim, err := b.Dimension()
	if err != nil {
		return 0, err
	}
	si, err := b.SI()
	if err != nil {
		return 0, err
	}
	switch dim {
	case quantity.Wavenumber:
		return si / 100, nil
	case quantity.Frequency:
		return si / constants.CCm, nil
	case quantity.Energy:
		return si / (constants.H * constants.CCm), nil
	case quantity.MolarEnergy:
		return si / (constants.H * constants.CCm * constants.Na), nil
	default:
		return 0, fmt.Errorf("%w: %q is not a rotational constant", quantity.ErrDimension, b.Units)
	}
}

// levelSpacing is B expressed in J/mol, so that E(J) = levelSpacing*J*(J+1).
func (r *LinearRotor) levelSpacing() float64 {
	return inertiaToConstant(r.inertia) * constants.H * constants.CCm * constants.Na
}

func (r *LinearRotor) LevelEnergy(j int) (float64, error) {
	if j < 0 {
		return 0, domainErr("LevelEnergy", "J", float64(j))
	}
	return r.levelSpacing() * float64(j) * float64(j+1), nil
}

func (r *LinearRotor) LevelDegeneracy(j int) (int, error) {
	if j < 0 {
		return 0, domainErr("LevelDegeneracy", "J", float64(j))
	}
	return 2*j + 1, nil
}

func (r *LinearRotor) PartitionFunction(t float64) (float64, error) {
	if err := checkTemperature("PartitionFunction", t); err != nil {
		return 0, err
	}
	if r.Quantum {
		return r.levelSums(t).q / float64(r.symmetry), nil
	}
	return r.classicalQ(t), nil
}

func (r *LinearRotor) HeatCapacity(t float64) (float64, error) {
	if err := checkTemperature("HeatCapacity", t); err != nil {
		return 0, err
	}
	if !r.Quantum {
		return constants.R, nil
	}
	s := r.levelSums(t)
	mean := s.x / s.q
	return constants.R * (s.x2/s.q - mean*mean), nil
}

func (r *LinearRotor) Enthalpy(t float64) (float64, error) {
	if err := checkTemperature("Enthalpy", t); err != nil {
		return 0, err
	}
	if !r.Quantum {
		return constants.R * t, nil
	}
	s := r.levelSums(t)
	return constants.R * t * s.x / s.q, nil
}

func (r *LinearRotor) Entropy(t float64) (float64, error) {
	if err := checkTemperature("Entropy", t); err != nil {
		return 0, err
	}
	if !r.Quantum {
		return constants.R * (1 + math.Log(r.classicalQ(t))), nil
	}
	s := r.levelSums(t)
	q := s.q / float64(r.symmetry)
	return constants.R * (math.Log(q) + s.x/s.q), nil
}

// DensityOfStates returns the density of states in (J/mol)^-1 at each
// grid energy. The quantum density places (2J+1)/sigma states in the grid
// bin nearest to each level; levels outside the grid are dropped.
func (r *LinearRotor) DensityOfStates(grid []float64) ([]float64, error) {
	if err := checkGrid("DensityOfStates", grid); err != nil {
		return nil, err
	}
	rho := make([]float64, len(grid))
	if len(grid) == 0 {
		return rho, nil
	}
	sigma := float64(r.symmetry)
	spacing := r.levelSpacing()

	if !r.Quantum {
		flat := 1 / (sigma * spacing)
		for i := range rho {
			rho[i] = flat
		}
		return rho, nil
	}

	widths, err := binWidths(grid)
	if err != nil {
		return nil, err
	}
	// Bin i spans [m_i, m_i+1) where m_i are the midpoints between grid
	// points, closed off by half a width at either end. Levels J in
	// [lo, hi) carry sum(2J+1) = hi^2 - lo^2 states.
	last := len(grid) - 1
	lo := levelsBelow(spacing, grid[0]-widths[0]/2)
	for i := range grid {
		edge := grid[i] + widths[i]/2
		if i < last {
			edge = (grid[i] + grid[i+1]) / 2
		}
		hi := levelsBelow(spacing, edge)
		rho[i] = (hi - lo) * (hi + lo) / sigma / widths[i]
		lo = hi
	}
	return rho, nil
}

// SumOfStates returns the number of states at or below each grid energy.
// The classical count is the closed form E/(sigma*B); the quantum count is
// the running sum of the binned density.
func (r *LinearRotor) SumOfStates(grid []float64) ([]float64, error) {
	if err := checkGrid("SumOfStates", grid); err != nil {
		return nil, err
	}
	sum := make([]float64, len(grid))
	if len(grid) == 0 {
		return sum, nil
	}

	if !r.Quantum {
		scale := 1 / (float64(r.symmetry) * r.levelSpacing())
		for i, e := range grid {
			sum[i] = e * scale
		}
		return sum, nil
	}

	rho, err := r.DensityOfStates(grid)
	if err != nil {
		return nil, err
	}
	widths, err := binWidths(grid)
	if err != nil {
		return nil, err
	}
	total := 0.0
	for i := range rho {
		total += rho[i] * widths[i]
		sum[i] = total
	}
	return sum, nil
}

func (r *LinearRotor) classicalQ(t float64) float64 {
	return constants.KB * t / (float64(r.symmetry) * constants.H * constants.CCm * inertiaToConstant(r.inertia))
}

// Params exposes the rotor parameters by name: inertia in amu*angstrom^2,
// B in cm^-1, symmetry and quantum (0 or 1).
func (r *LinearRotor) Params() map[string]float64 {
	inertia, _ := quantity.FromSI(r.inertia, InertiaUnits)
	quantum := 0.0
	if r.Quantum {
		quantum = 1
	}
	return map[string]float64{
		"inertia":  inertia.Value,
		"constant": inertiaToConstant(r.inertia),
		"symmetry": float64(r.symmetry),
		"quantum":  quantum,
	}
}

func (r *LinearRotor) SetParam(name string, value float64) error {
	switch name {
	case "inertia":
		q, err := quantity.New(value, InertiaUnits).Convert(r.units)
		if err != nil {
			q = quantity.New(value, InertiaUnits)
		}
		return r.SetInertia(q)
	case "constant":
		return r.SetRotationalConstant(quantity.New(value, ConstantUnits))
	case "symmetry":
		if value != math.Trunc(value) {
			return domainErr("SetParam", "symmetry", value)
		}
		return r.SetSymmetry(int(value))
	case "quantum":
		r.Quantum = value != 0
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}

func checkTemperature(op string, t float64) error {
	if !(t > 0) || math.IsInf(t, 0) {
		return domainErr(op, "T", t)
	}
	return nil
}
