package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/statmech/internal/quantity"
	"github.com/san-kum/statmech/internal/statmech"
)

const (
	metadataFile = "metadata.json"
	tableFile    = "table.csv"
	rotorFile    = "rotor.bin"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Kind      string            `json:"kind"`
	Timestamp time.Time         `json:"timestamp"`
	Rotor     string            `json:"rotor"`
	Inertia   quantity.Quantity `json:"inertia"`
	Constant  quantity.Quantity `json:"rotational_constant"`
	Symmetry  int               `json:"symmetry"`
	Quantum   bool              `json:"quantum"`
	Columns   []string          `json:"columns"`
	Rows      int               `json:"rows"`
}

// Save writes a run directory holding metadata.json, the table as CSV and
// the rotor in its binary encoding.
func (s *Store) Save(name, kind string, rotor *statmech.LinearRotor, table *Table) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%s_%d", name, kind, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Kind:      kind,
		Timestamp: now,
		Rotor:     rotor.String(),
		Inertia:   rotor.Inertia(),
		Constant:  rotor.RotationalConstant(),
		Symmetry:  rotor.Symmetry(),
		Quantum:   rotor.Quantum,
		Columns:   table.Columns,
		Rows:      len(table.Rows),
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	bin, err := rotor.MarshalBinary()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(runDir, rotorFile), bin, 0644); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, tableFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := table.WriteCSV(csvFile); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns the stored runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadRotor decodes the rotor saved with a run.
func (s *Store) LoadRotor(runID string) (*statmech.LinearRotor, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, rotorFile))
	if err != nil {
		return nil, err
	}
	var rotor statmech.LinearRotor
	if err := rotor.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &rotor, nil
}

func (s *Store) LoadTable(runID string) (*Table, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, tableFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &Table{}, nil
	}

	table := &Table{
		Columns: records[0],
		Rows:    make([][]float64, 0, len(records)-1),
	}
	for i, record := range records[1:] {
		row := make([]float64, len(record))
		for j, field := range record {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", tableFile, i+2, err)
			}
			row[j] = val
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
