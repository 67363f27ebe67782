package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment override, e.g. STATMECH_DATA_DIR.
const EnvPrefix = "statmech"

// Env holds the settings that may be overridden from the environment.
type Env struct {
	DataDir      string    `envconfig:"DATA_DIR"`
	Treatment    string    `envconfig:"TREATMENT"`
	Temperatures []float64 `envconfig:"TEMPERATURES"`
	GridPoints   int       `envconfig:"GRID_POINTS"`
	Verbose      bool      `envconfig:"VERBOSE"`
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment. Missing files are skipped; variables already set win.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ReadEnv reads the STATMECH_* variables.
func ReadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return Env{}, err
	}
	return env, nil
}

// ApplyEnv overlays the non-zero environment settings onto c.
func (c *Config) ApplyEnv(env Env) error {
	if env.DataDir != "" {
		c.DataDir = env.DataDir
	}
	switch env.Treatment {
	case "":
	case "quantum":
		c.Rotor.Quantum = true
	case "classical":
		c.Rotor.Quantum = false
	default:
		return fmt.Errorf("STATMECH_TREATMENT: want quantum or classical, got %q", env.Treatment)
	}
	if len(env.Temperatures) > 0 {
		c.Temperatures = env.Temperatures
	}
	if env.GridPoints != 0 {
		c.Grid.Points = env.GridPoints
	}
	return c.Validate()
}
