package quantity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/statmech/internal/constants"
)

// Dimension holds the exponents of mass, length, time, amount and
// temperature, in that order.
type Dimension [5]int

var (
	Dimensionless = Dimension{}
	Mass          = Dimension{1, 0, 0, 0, 0}
	Length        = Dimension{0, 1, 0, 0, 0}
	Time          = Dimension{0, 0, 1, 0, 0}
	Amount        = Dimension{0, 0, 0, 1, 0}
	Temperature   = Dimension{0, 0, 0, 0, 1}

	Inertia      = Dimension{1, 2, 0, 0, 0}
	Wavenumber   = Dimension{0, -1, 0, 0, 0}
	Frequency    = Dimension{0, 0, -1, 0, 0}
	Energy       = Dimension{1, 2, -2, 0, 0}
	MolarEnergy  = Dimension{1, 2, -2, -1, 0}
	MolarEntropy = Dimension{1, 2, -2, -1, -1}
)

func (d Dimension) mul(o Dimension, power int) Dimension {
	var r Dimension
	for i := range d {
		r[i] = d[i] + o[i]*power
	}
	return r
}

func (d Dimension) String() string {
	names := [5]string{"kg", "m", "s", "mol", "K"}
	parts := make([]string, 0, len(d))
	for i, e := range d {
		switch {
		case e == 0:
		case e == 1:
			parts = append(parts, names[i])
		default:
			parts = append(parts, fmt.Sprintf("%s^%d", names[i], e))
		}
	}
	if len(parts) == 0 {
		return "1"
	}
	return strings.Join(parts, "*")
}

// Unit is a parsed unit designator: multiplying a value expressed in the
// unit by Factor gives the SI value.
type Unit struct {
	Factor    float64
	Dimension Dimension
}

var baseUnits = map[string]Unit{
	"kg":  {1, Mass},
	"g":   {1e-3, Mass},
	"amu": {constants.Amu, Mass},
	"u":   {constants.Amu, Mass},

	"m":        {1, Length},
	"cm":       {1e-2, Length},
	"mm":       {1e-3, Length},
	"nm":       {1e-9, Length},
	"pm":       {1e-12, Length},
	"angstrom": {1e-10, Length},
	"bohr":     {constants.Bohr, Length},

	"s":   {1, Time},
	"ms":  {1e-3, Time},
	"Hz":  {1, Frequency},
	"kHz": {1e3, Frequency},
	"MHz": {1e6, Frequency},
	"GHz": {1e9, Frequency},

	"mol": {1, Amount},
	"K":   {1, Temperature},

	"J":    {1, Energy},
	"kJ":   {1e3, Energy},
	"cal":  {constants.Cal, Energy},
	"kcal": {constants.Cal * 1e3, Energy},
	"eV":   {1.602176634e-19, Energy},
}

// ParseUnits parses a designator such as "amu*angstrom^2", "cm^-1" or
// "J/mol/K". Each '/' inverts the factor that follows it; parentheses are
// not supported. The empty string is dimensionless.
func ParseUnits(s string) (Unit, error) {
	u := Unit{Factor: 1}
	s = strings.TrimSpace(s)
	if s == "" || s == "1" {
		return u, nil
	}

	sign := 1
	start := 0
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] != '*' && s[i] != '/' {
			continue
		}
		factor, err := parseFactor(s[start:i])
		if err != nil {
			return Unit{}, fmt.Errorf("%w: %q", err, s)
		}
		u = u.times(factor, sign)
		if i < len(s) && s[i] == '/' {
			sign = -1
		} else {
			sign = 1
		}
		start = i + 1
	}
	return u, nil
}

func parseFactor(tok string) (Unit, error) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return Unit{}, ErrUnits
	}
	name, exp := tok, 1
	if i := strings.IndexByte(tok, '^'); i >= 0 {
		name = tok[:i]
		e, err := strconv.Atoi(tok[i+1:])
		if err != nil || e == 0 {
			return Unit{}, ErrUnits
		}
		exp = e
	}
	base, ok := baseUnits[name]
	if !ok {
		return Unit{}, ErrUnits
	}
	return Unit{Factor: 1, Dimension: Dimensionless}.times(base, exp), nil
}

func (u Unit) times(o Unit, power int) Unit {
	f := u.Factor
	if power > 0 {
		for i := 0; i < power; i++ {
			f *= o.Factor
		}
	} else {
		for i := 0; i < -power; i++ {
			f /= o.Factor
		}
	}
	return Unit{Factor: f, Dimension: u.Dimension.mul(o.Dimension, power)}
}
