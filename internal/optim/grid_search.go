package optim

import (
	"context"
	"fmt"
	"math"
	"maps"

	"github.com/san-kum/statmech/internal/statmech"
)

// Objective scores one point of the search grid. Lower is better.
type Objective func(params map[string]float64) (float64, error)

// GridSearch exhaustively evaluates an objective over the cartesian
// product of per-parameter value lists.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search returns the best parameter set and its score. Any objective error
// aborts the search.
func (g *GridSearch) Search(ctx context.Context, objective Objective) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("grid search: %d params but %d ranges", len(g.paramNames), len(g.ranges))
	}
	for i, r := range g.ranges {
		if len(r) == 0 {
			return nil, 0, fmt.Errorf("grid search: empty range for %s", g.paramNames[i])
		}
	}

	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, make(map[string]float64), objective, &best, &bestParams)
	if err != nil {
		return nil, 0, err
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	objective Objective,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		val, err := objective(current)
		if err != nil {
			return err
		}
		if val < *best || *bestParams == nil {
			*best = val
			*bestParams = maps.Clone(current)
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := maps.Clone(current)
		next[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, next, objective, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive. It is
// empty for n < 1.
func Linspace(lo, hi float64, n int) []float64 {
	if n < 1 {
		return []float64{}
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return out
}

// HeatCapacityPeak finds the temperature in temps where the heat capacity
// of m is largest.
func HeatCapacityPeak(ctx context.Context, m statmech.Mode, temps []float64) (t, cv float64, err error) {
	search := NewGridSearch([]string{"T"}, [][]float64{temps})
	best, score, err := search.Search(ctx, func(p map[string]float64) (float64, error) {
		c, err := m.HeatCapacity(p["T"])
		return -c, err
	})
	if err != nil {
		return 0, 0, err
	}
	return best["T"], -score, nil
}
