package statmech

// Mode is a molecular degree of freedom with a level spectrum and the
// thermodynamic functions derived from it.
type Mode interface {
	LevelEnergy(j int) (float64, error)
	LevelDegeneracy(j int) (int, error)
	PartitionFunction(t float64) (float64, error)
	HeatCapacity(t float64) (float64, error)
	Enthalpy(t float64) (float64, error)
	Entropy(t float64) (float64, error)
	DensityOfStates(grid []float64) ([]float64, error)
	SumOfStates(grid []float64) ([]float64, error)
}

// Configurable is implemented by modes whose parameters can be adjusted by
// name at runtime.
type Configurable interface {
	Params() map[string]float64
	SetParam(name string, value float64) error
}

var (
	_ Mode         = (*LinearRotor)(nil)
	_ Configurable = (*LinearRotor)(nil)
)
