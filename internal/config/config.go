package config

import (
	"fmt"
	"os"

	"github.com/san-kum/statmech/internal/constants"
	"github.com/san-kum/statmech/internal/quantity"
	"github.com/san-kum/statmech/internal/statmech"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSymmetry  = 1
	DefaultLevels    = 20
	DefaultGridStep  = 1.0
	DefaultGridUnits = "cm^-1"
	DefaultPoints    = 4000
	DefaultDataDir   = ".statmech"
)

var DefaultTemperatures = []float64{300, 500, 1000, 1500, 2000}

type Config struct {
	Name         string      `yaml:"name"`
	Rotor        RotorConfig `yaml:"rotor"`
	Temperatures []float64   `yaml:"temperatures"`
	Grid         GridConfig  `yaml:"grid"`
	Levels       int         `yaml:"levels"`
	DataDir      string      `yaml:"data_dir"`
}

// RotorConfig describes a rotor by inertia or by rotational constant.
// When both are set the inertia wins.
type RotorConfig struct {
	Inertia            *quantity.Quantity `yaml:"inertia,omitempty"`
	RotationalConstant *quantity.Quantity `yaml:"rotational_constant,omitempty"`
	Symmetry           int                `yaml:"symmetry"`
	Quantum            bool               `yaml:"quantum"`
}

// UnmarshalYAML replaces the whole rotor block, so a file giving only a
// rotational constant does not inherit the default inertia.
func (r *RotorConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain RotorConfig
	p := plain{Symmetry: DefaultSymmetry, Quantum: true}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*r = RotorConfig(p)
	return nil
}

// GridConfig is a uniform energy grid starting at zero.
type GridConfig struct {
	Step   quantity.Quantity `yaml:"step"`
	Points int               `yaml:"points"`
}

func DefaultConfig() *Config {
	inertia := quantity.New(11.75, "amu*angstrom^2")
	return &Config{
		Name: "example",
		Rotor: RotorConfig{
			Inertia:  &inertia,
			Symmetry: 2,
			Quantum:  true,
		},
		Temperatures: append([]float64(nil), DefaultTemperatures...),
		Grid: GridConfig{
			Step:   quantity.New(DefaultGridStep, DefaultGridUnits),
			Points: DefaultPoints,
		},
		Levels:  DefaultLevels,
		DataDir: DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	return LoadOnto(path, DefaultConfig())
}

// LoadOnto reads the file at path over base, so keys missing from the file
// keep the values of base. A rotor block in the file replaces base's rotor.
func LoadOnto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Rotor.Inertia == nil && c.Rotor.RotationalConstant == nil {
		return fmt.Errorf("rotor: inertia or rotational_constant required")
	}
	if c.Rotor.Symmetry < 1 {
		return fmt.Errorf("rotor: symmetry must be >= 1, got %d", c.Rotor.Symmetry)
	}
	if len(c.Temperatures) == 0 {
		return fmt.Errorf("temperatures: at least one required")
	}
	for _, t := range c.Temperatures {
		if !(t > 0) {
			return fmt.Errorf("temperatures: %g is not positive", t)
		}
	}
	if c.Grid.Points < 2 {
		return fmt.Errorf("grid: need at least 2 points, got %d", c.Grid.Points)
	}
	if !(c.Grid.Step.Value > 0) {
		return fmt.Errorf("grid: step must be positive, got %g", c.Grid.Step.Value)
	}
	if c.Levels < 1 {
		return fmt.Errorf("levels must be >= 1, got %d", c.Levels)
	}
	return nil
}

// BuildRotor constructs the configured rotor.
func (c *Config) BuildRotor() (*statmech.LinearRotor, error) {
	opts := []statmech.Option{
		statmech.WithSymmetry(c.Rotor.Symmetry),
		statmech.WithQuantum(c.Rotor.Quantum),
	}
	if c.Rotor.Inertia != nil {
		return statmech.NewLinearRotor(*c.Rotor.Inertia, opts...)
	}
	if c.Rotor.RotationalConstant != nil {
		return statmech.NewLinearRotorFromConstant(*c.Rotor.RotationalConstant, opts...)
	}
	return nil, fmt.Errorf("rotor: inertia or rotational_constant required")
}

// Energies returns the grid energies in J/mol. The step may be given as a
// molar energy or as a wavenumber.
func (g GridConfig) Energies() ([]float64, error) {
	dim, err := g.Step.Dimension()
	if err != nil {
		return nil, err
	}
	si, err := g.Step.SI()
	if err != nil {
		return nil, err
	}
	var step float64
	switch dim {
	case quantity.MolarEnergy:
		step = si
	case quantity.Wavenumber:
		step = si / 100 * constants.H * constants.CCm * constants.Na
	default:
		return nil, fmt.Errorf("grid step: %w: %q", quantity.ErrDimension, g.Step.Units)
	}
	if !(step > 0) {
		return nil, fmt.Errorf("grid step must be positive, got %g", step)
	}
	return statmech.UniformGrid(step, g.Points), nil
}
