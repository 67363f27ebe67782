// Package statmech provides statistical-mechanics models of molecular
// degrees of freedom.
//
// The package is organised around the [Mode] capability interface:
//
//   - [Mode]: level spectrum, thermodynamic functions and state counts
//   - [LinearRotor]: rigid linear rotor in a quantum or classical treatment
//   - [ThermoTable]: concurrent evaluation of a mode over temperatures
//   - [Correspondence]: quantum versus classical comparison of a rotor
//
// # Units
//
// Temperatures are in K, level energies and energy grids in J/mol, heat
// capacities and entropies in J/(mol*K) and enthalpies in J/mol. Physical
// inputs such as moments of inertia are passed as [quantity.Quantity]
// values and stored in SI.
//
// # Example
//
//	rotor, _ := statmech.NewLinearRotor(quantity.New(11.75, "amu*angstrom^2"), statmech.WithSymmetry(2))
//	q, _ := rotor.PartitionFunction(300)
//
// # Thread Safety
//
// Query methods never mutate the receiver and may be called concurrently.
// Setters are not synchronised; callers mutating a rotor shared between
// goroutines must serialise access themselves.
package statmech
