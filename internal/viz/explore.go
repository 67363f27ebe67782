package viz

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/statmech/internal/statmech"
)

const (
	tempFactor    = 1.1
	inertiaFactor = 1.1
	minTemp       = 1e-3
	curvePoints   = 48
)

// Explorer is a bubbletea model showing the thermodynamics of a rotor at
// an adjustable temperature.
type Explorer struct {
	name  string
	rotor *statmech.LinearRotor
	temp  float64
	err   error
	width int
}

// NewExplorer copies rotor; the caller's value is never modified.
func NewExplorer(name string, rotor *statmech.LinearRotor, temp float64) Explorer {
	return Explorer{name: name, rotor: rotor.Clone(), temp: temp, width: 80}
}

func (m Explorer) Rotor() *statmech.LinearRotor { return m.rotor.Clone() }
func (m Explorer) Temperature() float64 { return m.temp }

func (m Explorer) Init() tea.Cmd { return nil }

func (m Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m Explorer) handleKey(msg tea.KeyMsg) (Explorer, tea.Cmd) {
	r := m.rotor.Clone()
	var err error

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		m.temp *= tempFactor
	case "down", "j":
		m.temp = math.Max(m.temp/tempFactor, minTemp)
	case "t", " ":
		r.Quantum = !r.Quantum
	case "s":
		err = r.SetSymmetry(r.Symmetry() + 1)
	case "S":
		err = r.SetSymmetry(r.Symmetry() - 1)
	case "+", "=":
		err = scaleParam(r, "inertia", inertiaFactor)
	case "-", "_":
		err = scaleParam(r, "inertia", 1/inertiaFactor)
	default:
		return m, nil
	}

	m.err = err
	if err == nil {
		m.rotor = r
	}
	return m, nil
}

func scaleParam(c statmech.Configurable, name string, factor float64) error {
	value, ok := c.Params()[name]
	if !ok {
		return fmt.Errorf("unknown param: %s", name)
	}
	return c.SetParam(name, value*factor)
}

func (m Explorer) View() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("rigid rotor · "+m.name) + "\n\n")

	params := m.rotor.Params()
	s.WriteString(Metric("treatment", "") + Treatment(m.rotor.Quantum) + "\n")
	s.WriteString(Metric("inertia", fmt.Sprintf("%.5g amu·Å²", params["inertia"])) + "\n")
	s.WriteString(Metric("B", fmt.Sprintf("%.5g cm⁻¹", params["constant"])) + "\n")
	s.WriteString(Metric("symmetry", fmt.Sprintf("%d", m.rotor.Symmetry())) + "\n")
	s.WriteString(Metric("T", fmt.Sprintf("%.4g K", m.temp)) + "\n\n")

	row, err := statmech.Thermo(m.rotor, m.temp)
	if err != nil {
		s.WriteString(ErrorStyle.Render(err.Error()) + "\n")
	} else {
		s.WriteString(Metric("Q", fmt.Sprintf("%.6g", row.Q)) + "\n")
		s.WriteString(Metric("Cv", fmt.Sprintf("%.6g J/mol/K", row.Cv)) + "\n")
		s.WriteString(Metric("H", fmt.Sprintf("%.6g J/mol", row.H)) + "\n")
		s.WriteString(Metric("S", fmt.Sprintf("%.6g J/mol/K", row.S)) + "\n")
	}

	if curve := m.heatCapacityCurve(); len(curve) > 0 {
		s.WriteString("\n" + Subtle.Render("Cv from T/10 to 10T  ") + SparklineChart(curve, curvePoints) + "\n")
	}

	if m.err != nil {
		s.WriteString("\n" + ErrorStyle.Render(m.err.Error()) + "\n")
	}

	s.WriteString("\n" + KeyHint.Render("↑/↓ temperature  t treatment  s/S symmetry  +/- inertia  q quit"))
	return GlassPanel.Render(s.String())
}

// heatCapacityCurve samples Cv on a log temperature scale around m.temp.
func (m Explorer) heatCapacityCurve() []float64 {
	curve := make([]float64, 0, curvePoints)
	for i := 0; i < curvePoints; i++ {
		f := float64(i)/float64(curvePoints-1)*2 - 1
		cv, err := m.rotor.HeatCapacity(m.temp * math.Pow(10, f))
		if err != nil {
			return nil
		}
		curve = append(curve, cv)
	}
	return curve
}
