package statmech

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/san-kum/statmech/internal/quantity"
	"gopkg.in/yaml.v3"
)

// String renders the rotor in a form accepted by ParseLinearRotor, with the
// inertia to twelve significant digits:
//
//	LinearRotor(inertia=(11.75,"amu*angstrom^2"), symmetry=2, quantum=false)
func (r *LinearRotor) String() string {
	in := r.Inertia()
	return fmt.Sprintf("LinearRotor(inertia=(%s,%q), symmetry=%d, quantum=%t)",
		strconv.FormatFloat(in.Value, 'g', 12, 64), in.Units, r.symmetry, r.Quantum)
}

var reprPattern = regexp.MustCompile(
	`^\s*LinearRotor\(\s*inertia\s*=\s*\(\s*([^,\s]+)\s*,\s*("(?:[^"\\]|\\.)*")\s*\)\s*,\s*symmetry\s*=\s*(\d+)\s*,\s*quantum\s*=\s*(true|false)\s*\)\s*$`)

// ParseLinearRotor reconstructs a rotor from its String form.
func ParseLinearRotor(s string) (*LinearRotor, error) {
	m := reprPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrEncoding, s)
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: inertia %q", ErrEncoding, m[1])
	}
	units, err := strconv.Unquote(m[2])
	if err != nil {
		return nil, fmt.Errorf("%w: units %s", ErrEncoding, m[2])
	}
	symmetry, err := strconv.Atoi(m[3])
	if err != nil {
		return nil, fmt.Errorf("%w: symmetry %q", ErrEncoding, m[3])
	}
	return NewLinearRotor(quantity.New(value, units),
		WithSymmetry(symmetry), WithQuantum(m[4] == "true"))
}

const (
	binaryMagic   = "LROT"
	binaryVersion = 1
)

// MarshalBinary encodes the stored fields with a fixed little-endian layout:
// magic, version, quantum flag, symmetry, SI inertia bits, display units.
func (r *LinearRotor) MarshalBinary() ([]byte, error) {
	if len(r.units) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: units too long", ErrEncoding)
	}
	if uint64(r.symmetry) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: symmetry %d does not fit in 32 bits", ErrEncoding, r.symmetry)
	}
	var buf bytes.Buffer
	buf.WriteString(binaryMagic)
	buf.WriteByte(binaryVersion)
	if r.Quantum {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
	var scratch [8]byte
	binary.LittleEndian.PutUint32(scratch[:4], uint32(r.symmetry))
	buf.Write(scratch[:4])
	binary.LittleEndian.PutUint64(scratch[:], math.Float64bits(r.inertia))
	buf.Write(scratch[:])
	binary.LittleEndian.PutUint16(scratch[:2], uint16(len(r.units)))
	buf.Write(scratch[:2])
	buf.WriteString(r.units)
	return buf.Bytes(), nil
}

func (r *LinearRotor) UnmarshalBinary(data []byte) error {
	const header = len(binaryMagic) + 1 + 1 + 4 + 8 + 2
	if len(data) < header || string(data[:len(binaryMagic)]) != binaryMagic {
		return fmt.Errorf("%w: bad header", ErrEncoding)
	}
	p := len(binaryMagic)
	if data[p] != binaryVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrEncoding, data[p])
	}
	quantum := data[p+1] != 0
	p += 2
	symmetry := int(binary.LittleEndian.Uint32(data[p:]))
	p += 4
	inertia := math.Float64frombits(binary.LittleEndian.Uint64(data[p:]))
	p += 8
	n := int(binary.LittleEndian.Uint16(data[p:]))
	p += 2
	if len(data) != p+n {
		return fmt.Errorf("%w: length mismatch", ErrEncoding)
	}
	units := string(data[p:])

	if symmetry < 1 {
		return domainErr("UnmarshalBinary", "symmetry", float64(symmetry))
	}
	if !(inertia > 0) || math.IsInf(inertia, 0) {
		return domainErr("UnmarshalBinary", "inertia", inertia)
	}
	if _, err := quantity.ParseUnits(units); err != nil {
		return err
	}
	*r = LinearRotor{inertia: inertia, units: units, symmetry: symmetry, Quantum: quantum}
	return nil
}

// rotorDoc is the structured YAML/JSON form. Exactly one of Inertia and
// RotationalConstant is required when decoding.
type rotorDoc struct {
	Inertia            *quantity.Quantity `yaml:"inertia,omitempty" json:"inertia,omitempty"`
	RotationalConstant *quantity.Quantity `yaml:"rotational_constant,omitempty" json:"rotational_constant,omitempty"`
	Symmetry           *int               `yaml:"symmetry,omitempty" json:"symmetry,omitempty"`
	Quantum            *bool              `yaml:"quantum,omitempty" json:"quantum,omitempty"`
}

func (r *LinearRotor) doc() rotorDoc {
	in := r.Inertia()
	symmetry, quantum := r.symmetry, r.Quantum
	return rotorDoc{Inertia: &in, Symmetry: &symmetry, Quantum: &quantum}
}

func (d rotorDoc) build() (*LinearRotor, error) {
	opts := []Option{}
	if d.Symmetry != nil {
		opts = append(opts, WithSymmetry(*d.Symmetry))
	}
	if d.Quantum != nil {
		opts = append(opts, WithQuantum(*d.Quantum))
	}
	switch {
	case d.Inertia != nil && d.RotationalConstant != nil:
		return nil, fmt.Errorf("%w: both inertia and rotational_constant given", ErrEncoding)
	case d.Inertia != nil:
		return NewLinearRotor(*d.Inertia, opts...)
	case d.RotationalConstant != nil:
		return NewLinearRotorFromConstant(*d.RotationalConstant, opts...)
	default:
		return nil, fmt.Errorf("%w: missing inertia or rotational_constant", ErrEncoding)
	}
}

func (r *LinearRotor) MarshalYAML() (interface{}, error) {
	return r.doc(), nil
}

func (r *LinearRotor) UnmarshalYAML(value *yaml.Node) error {
	var d rotorDoc
	if err := value.Decode(&d); err != nil {
		return err
	}
	built, err := d.build()
	if err != nil {
		return err
	}
	*r = *built
	return nil
}

func (r *LinearRotor) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.doc())
}

func (r *LinearRotor) UnmarshalJSON(data []byte) error {
	var d rotorDoc
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	built, err := d.build()
	if err != nil {
		return err
	}
	*r = *built
	return nil
}
