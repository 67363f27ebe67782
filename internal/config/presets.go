package config

import (
	"sort"

	"github.com/san-kum/statmech/internal/quantity"
)

// Presets are common linear molecules, given by rotational constant in
// cm^-1 with their symmetry numbers.
var Presets = map[string]*Config{
	"example": DefaultConfig(),
	"h2":      preset("h2", 60.853, 2),
	"n2":      preset("n2", 1.998, 2),
	"o2":      preset("o2", 1.4377, 2),
	"co":      preset("co", 1.9313, 1),
	"co2":     preset("co2", 0.3902, 2),
	"hcl":     preset("hcl", 10.5934, 1),
	"hcn":     preset("hcn", 1.4782, 1),
	"c2h2":    preset("c2h2", 1.1766, 2),
}

func preset(name string, b float64, symmetry int) *Config {
	cfg := DefaultConfig()
	constant := quantity.New(b, "cm^-1")
	cfg.Name = name
	cfg.Rotor = RotorConfig{
		RotationalConstant: &constant,
		Symmetry:           symmetry,
		Quantum:            true,
	}
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	c.Temperatures = append([]float64(nil), cfg.Temperatures...)
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
