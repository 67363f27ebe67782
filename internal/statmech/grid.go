package statmech

import (
	"fmt"
	"math"

	"github.com/san-kum/statmech/internal/constants"
)

// UniformGrid returns n energies 0, step, 2*step, ... in J/mol.
func UniformGrid(step float64, n int) []float64 {
	grid := make([]float64, n)
	for i := range grid {
		grid[i] = float64(i) * step
	}
	return grid
}

// IntegrateDensity sums rho(E)*exp(-E/RT)*w over the grid, where w is the
// bin width of each grid point. For a density of states this reproduces
// the partition function.
func IntegrateDensity(grid, rho []float64, t float64) (float64, error) {
	if err := checkTemperature("IntegrateDensity", t); err != nil {
		return 0, err
	}
	if len(grid) != len(rho) {
		return 0, fmt.Errorf("%w: grid has %d points, density has %d", ErrDomain, len(grid), len(rho))
	}
	if err := checkGrid("IntegrateDensity", grid); err != nil {
		return 0, err
	}
	widths, err := binWidths(grid)
	if err != nil {
		return 0, err
	}
	rt := constants.R * t
	total := 0.0
	for i, e := range grid {
		total += rho[i] * math.Exp(-e/rt) * widths[i]
	}
	return total, nil
}

// binWidths returns the width of each grid bin: the forward difference for
// the first point and the backward difference for every other point, so a
// uniform grid has constant width.
func binWidths(grid []float64) ([]float64, error) {
	if len(grid) < 2 {
		return nil, fmt.Errorf("%w: energy grid needs at least two points, got %d", ErrDomain, len(grid))
	}
	widths := make([]float64, len(grid))
	widths[0] = grid[1] - grid[0]
	for i := 1; i < len(grid); i++ {
		widths[i] = grid[i] - grid[i-1]
	}
	return widths, nil
}

// checkGrid requires finite, non-negative, strictly ascending energies.
func checkGrid(op string, grid []float64) error {
	for i, e := range grid {
		if !(e >= 0) || math.IsInf(e, 0) {
			return domainErr(op, fmt.Sprintf("E[%d]", i), e)
		}
		if i > 0 && !(e > grid[i-1]) {
			return domainErr(op, fmt.Sprintf("E[%d]", i), e)
		}
	}
	return nil
}
