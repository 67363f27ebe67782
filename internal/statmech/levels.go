package statmech

import (
	"math"

	"github.com/san-kum/statmech/internal/constants"
)

const (
	// truncationTolerance bounds the last included term of a level sum
	// relative to the running sum. The tail past that point decays faster
	// than geometrically, so the truncation error stays below the tolerance.
	truncationTolerance = 1e-12

	// maxLevels caps the level sums for extreme temperature to spacing ratios.
	maxLevels = 1 << 24
)

// boltzmannSums holds the Boltzmann-weighted moments of the reduced level
// energy x = E/RT, without the symmetry number.
type boltzmannSums struct {
	q  float64 // sum g*exp(-x)
	x  float64 // sum g*x*exp(-x)
	x2 float64 // sum g*x^2*exp(-x)
}

func (r *LinearRotor) levelSums(t float64) boltzmannSums {
	beta := r.levelSpacing() / (constants.R * t)

	var s boltzmannSums
	prev := 0.0
	for j := 0; j < maxLevels; j++ {
		x := beta * float64(j) * float64(j+1)
		term := float64(2*j+1) * math.Exp(-x)
		s.q += term
		s.x += term * x
		s.x2 += term * x * x
		if term < prev && term < truncationTolerance*s.q {
			break
		}
		prev = term
	}
	return s
}

// levelsBelow counts the levels with E(J) < e for E(J) = spacing*J*(J+1),
// that is the smallest J with E(J) >= e. It is returned as a float so that
// grids reaching far beyond int range still count.
func levelsBelow(spacing, e float64) float64 {
	if !(e > 0) {
		return 0
	}
	j := math.Ceil(math.Sqrt(e/spacing+0.25) - 0.5)
	if j < 1<<52 {
		for j > 0 && spacing*(j-1)*j >= e {
			j--
		}
		for spacing*j*(j+1) < e {
			j++
		}
	}
	return j
}
