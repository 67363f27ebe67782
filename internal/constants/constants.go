// Package constants holds the physical constants shared by the statmech
// packages. Values are CODATA 2018 in SI units.
package constants

import "math"

const (
	// Boltzmann constant (J/K)
	KB = 1.380649e-23
	// Avogadro constant (1/mol)
	Na = 6.02214076e23
	// Planck constant (J*s)
	H = 6.62607015e-34
	// Speed of light (m/s)
	C = 299792458.0
	// Atomic mass unit (kg)
	Amu = 1.66053906660e-27
	// Bohr radius (m)
	Bohr = 5.29177210903e-11
	// Calorie (J)
	Cal = 4.184
)

// Derived constants.
const (
	// Gas constant (J/(mol*K))
	R = KB * Na
	// Reduced Planck constant (J*s)
	Hbar = H / (2 * math.Pi)
	// Speed of light in cm/s, used with wavenumbers in cm^-1.
	CCm = C * 100
)
