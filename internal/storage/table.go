package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/statmech/internal/statmech"
)

// Table is a column-labelled block of numbers.
type Table struct {
	Columns []string    `json:"columns"`
	Rows    [][]float64 `json:"rows"`
}

// Column returns the values of the named column.
func (t *Table) Column(name string) ([]float64, error) {
	idx := -1
	for i, c := range t.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("no column %q", name)
	}
	out := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			out[i] = row[idx]
		}
	}
	return out, nil
}

func ThermoTable(rows []statmech.ThermoRow) *Table {
	t := &Table{Columns: []string{"T", "Q", "Cv", "H", "S"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []float64{r.T, r.Q, r.Cv, r.H, r.S})
	}
	return t
}

func CorrespondenceTable(rows []statmech.CorrespondenceRow) *Table {
	t := &Table{Columns: []string{"T", "Q_quantum", "Q_classical", "rel_Q", "rel_Cv", "rel_H", "rel_S"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []float64{r.T, r.Quantum.Q, r.Classical.Q, r.RelQ, r.RelCv, r.RelH, r.RelS})
	}
	return t
}

func StatesTable(states *statmech.States) *Table {
	t := &Table{Columns: []string{"E", "density", "sum"}}
	for i, e := range states.Grid {
		t.Rows = append(t.Rows, []float64{e, states.Density[i], states.Sum[i]})
	}
	return t
}

func LevelsTable(levels []statmech.Level) *Table {
	t := &Table{Columns: []string{"J", "E", "g"}}
	for _, l := range levels {
		t.Rows = append(t.Rows, []float64{float64(l.J), l.Energy, float64(l.Degeneracy)})
	}
	return t
}

// WriteCSV writes the table with a header row.
func (t *Table) WriteCSV(out io.Writer) error {
	w := csv.NewWriter(out)
	if err := w.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		record := make([]string, len(row))
		for i, val := range row {
			record[i] = strconv.FormatFloat(val, 'g', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

type ExportData struct {
	Run   *RunMetadata `json:"run"`
	Table *Table       `json:"table"`
}

func ExportJSON(out io.Writer, meta *RunMetadata, table *Table) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Run: meta, Table: table})
}
