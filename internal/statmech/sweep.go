package statmech

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ThermoRow holds the thermodynamic functions of a mode at one temperature.
type ThermoRow struct {
	T  float64 `json:"t"`
	Q  float64 `json:"q"`
	Cv float64 `json:"cv"`
	H  float64 `json:"h"`
	S  float64 `json:"s"`
}

// Thermo evaluates every thermodynamic function of m at t.
func Thermo(m Mode, t float64) (ThermoRow, error) {
	row := ThermoRow{T: t}
	var err error
	if row.Q, err = m.PartitionFunction(t); err != nil {
		return ThermoRow{}, err
	}
	if row.Cv, err = m.HeatCapacity(t); err != nil {
		return ThermoRow{}, err
	}
	if row.H, err = m.Enthalpy(t); err != nil {
		return ThermoRow{}, err
	}
	if row.S, err = m.Entropy(t); err != nil {
		return ThermoRow{}, err
	}
	return row, nil
}

// ThermoTable evaluates m at each temperature concurrently. Rows are
// returned in input order; the first error cancels the remaining work.
func ThermoTable(ctx context.Context, m Mode, temps []float64) ([]ThermoRow, error) {
	rows := make([]ThermoRow, len(temps))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, t := range temps {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row, err := Thermo(m, t)
			if err != nil {
				return err
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

// CorrespondenceRow compares the quantum and classical treatments of a
// rotor at one temperature.
type CorrespondenceRow struct {
	T         float64   `json:"t"`
	Quantum   ThermoRow `json:"quantum"`
	Classical ThermoRow `json:"classical"`
	RelQ      float64   `json:"rel_q"`
	RelCv     float64   `json:"rel_cv"`
	RelH      float64   `json:"rel_h"`
	RelS      float64   `json:"rel_s"`
}

// Correspondence evaluates quantum and classical copies of r side by side.
// r itself is not modified.
func Correspondence(ctx context.Context, r *LinearRotor, temps []float64) ([]CorrespondenceRow, error) {
	quantum := r.Clone()
	quantum.Quantum = true
	classical := r.Clone()
	classical.Quantum = false

	var qRows, cRows []ThermoRow
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		qRows, err = ThermoTable(ctx, quantum, temps)
		return err
	})
	g.Go(func() error {
		var err error
		cRows, err = ThermoTable(ctx, classical, temps)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := make([]CorrespondenceRow, len(temps))
	for i := range temps {
		q, c := qRows[i], cRows[i]
		rows[i] = CorrespondenceRow{
			T:         temps[i],
			Quantum:   q,
			Classical: c,
			RelQ:      relDiff(q.Q, c.Q),
			RelCv:     relDiff(q.Cv, c.Cv),
			RelH:      relDiff(q.H, c.H),
			RelS:      relDiff(q.S, c.S),
		}
	}
	return rows, nil
}

func relDiff(a, ref float64) float64 {
	if ref == 0 {
		return math.Abs(a)
	}
	return math.Abs(a-ref) / math.Abs(ref)
}

// States is the density and sum of states of a mode on an energy grid.
type States struct {
	Grid    []float64 `json:"grid"`
	Density []float64 `json:"density"`
	Sum     []float64 `json:"sum"`
}

func StatesTable(m Mode, grid []float64) (*States, error) {
	rho, err := m.DensityOfStates(grid)
	if err != nil {
		return nil, err
	}
	sum, err := m.SumOfStates(grid)
	if err != nil {
		return nil, err
	}
	return &States{Grid: grid, Density: rho, Sum: sum}, nil
}

// Level is one rotational level.
type Level struct {
	J          int     `json:"j"`
	Energy     float64 `json:"energy"`
	Degeneracy int     `json:"degeneracy"`
}

// Levels lists levels 0..n-1 of m.
func Levels(m Mode, n int) ([]Level, error) {
	if n < 0 {
		return nil, domainErr("Levels", "n", float64(n))
	}
	levels := make([]Level, 0, n)
	for j := 0; j < n; j++ {
		e, err := m.LevelEnergy(j)
		if err != nil {
			return nil, err
		}
		g, err := m.LevelDegeneracy(j)
		if err != nil {
			return nil, err
		}
		levels = append(levels, Level{J: j, Energy: e, Degeneracy: g})
	}
	return levels, nil
}
