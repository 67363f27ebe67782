package statmech_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/statmech/internal/constants"
	"github.com/san-kum/statmech/internal/quantity"
	"github.com/san-kum/statmech/internal/statmech"
)

var temps = []float64{300, 500, 1000, 1500, 2000}

func newExampleRotor(quantum bool) *statmech.LinearRotor {
	r, err := statmech.NewLinearRotor(quantity.New(11.75, "amu*angstrom^2"),
		statmech.WithSymmetry(2), statmech.WithQuantum(quantum))
	Expect(err).NotTo(HaveOccurred())
	return r
}

func relTo(expected float64) float64 {
	return 1e-4 * math.Abs(expected)
}

var _ = Describe("LinearRotor", func() {
	var rotor *statmech.LinearRotor

	BeforeEach(func() {
		rotor = newExampleRotor(false)
	})

	Describe("construction", func() {
		It("defaults to a quantum rotor with symmetry number 1", func() {
			r, err := statmech.NewLinearRotor(quantity.New(11.75, "amu*angstrom^2"))
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Symmetry()).To(Equal(1))
			Expect(r.Quantum).To(BeTrue())
		})

		It("stores the inertia in SI", func() {
			Expect(rotor.InertiaSI()).To(BeNumerically("~", 11.75*constants.Amu*1e-20, 1e-52))
			Expect(rotor.Inertia().Units).To(Equal("amu*angstrom^2"))
			Expect(rotor.Inertia().Value).To(BeNumerically("~", 11.75, 1e-12))
		})

		It("rejects non-positive inertia and symmetry", func() {
			_, err := statmech.NewLinearRotor(quantity.New(0, "amu*angstrom^2"))
			Expect(err).To(MatchError(statmech.ErrDomain))

			_, err = statmech.NewLinearRotor(quantity.New(-1, "kg*m^2"))
			Expect(err).To(MatchError(statmech.ErrDomain))

			_, err = statmech.NewLinearRotor(quantity.New(11.75, "amu*angstrom^2"), statmech.WithSymmetry(0))
			Expect(err).To(MatchError(statmech.ErrDomain))
		})

		It("rejects malformed or mismatched units", func() {
			_, err := statmech.NewLinearRotor(quantity.New(11.75, "amu*parsec^2"))
			Expect(err).To(MatchError(quantity.ErrUnits))

			_, err = statmech.NewLinearRotor(quantity.New(11.75, "cm^-1"))
			Expect(err).To(MatchError(quantity.ErrDimension))
		})

		It("builds from a rotational constant in several units", func() {
			for _, b := range []quantity.Quantity{
				quantity.New(1.434692, "cm^-1"),
				quantity.New(143.4692, "m^-1"),
				quantity.New(1.434692*constants.CCm/1e9, "GHz"),
				quantity.New(1.434692*constants.H*constants.CCm*constants.Na, "J/mol"),
			} {
				r, err := statmech.NewLinearRotorFromConstant(b, statmech.WithSymmetry(2))
				Expect(err).NotTo(HaveOccurred())
				Expect(r.Inertia().Units).To(Equal(statmech.InertiaUnits))
				Expect(r.Inertia().Value).To(BeNumerically("~", 11.75, 1e-4))
			}
		})
	})

	Describe("rotational constant", func() {
		It("is derived from the inertia", func() {
			b := rotor.RotationalConstant()
			Expect(b.Units).To(Equal("cm^-1"))
			Expect(b.Value).To(BeNumerically("~", 1.434692, 5e-5))
		})

		It("halves the inertia when doubled", func() {
			b := rotor.RotationalConstant()
			b.Value *= 2
			Expect(rotor.SetRotationalConstant(b)).To(Succeed())

			iact := rotor.InertiaSI() * constants.Na * 1e23
			Expect(iact).To(BeNumerically("~", 0.5*11.75, 5e-5))
			Expect(rotor.Inertia().Units).To(Equal("amu*angstrom^2"))
		})

		It("doubles when the inertia is halved", func() {
			b0 := rotor.RotationalConstant().Value
			Expect(rotor.SetInertia(quantity.New(11.75/2, "amu*angstrom^2"))).To(Succeed())
			Expect(rotor.RotationalConstant().Value).To(BeNumerically("~", 2*b0, 1e-12))
		})

		It("round-trips through the inertia", func() {
			b := rotor.RotationalConstant()
			Expect(rotor.SetRotationalConstant(b)).To(Succeed())
			Expect(rotor.InertiaSI()).To(BeNumerically("~", 11.75*constants.Amu*1e-20, 1e-58))
		})

		It("rejects non-positive values", func() {
			Expect(rotor.SetRotationalConstant(quantity.New(0, "cm^-1"))).To(MatchError(statmech.ErrDomain))
			Expect(rotor.SetRotationalConstant(quantity.New(1, "kg"))).To(MatchError(quantity.ErrDimension))
		})
	})

	Describe("levels", func() {
		It("has zero ground energy and E(J) = B*h*c*Na*J(J+1)", func() {
			b := rotor.RotationalConstant().Value * constants.H * constants.CCm * constants.Na
			for j := 0; j < 100; j++ {
				e, err := rotor.LevelEnergy(j)
				Expect(err).NotTo(HaveOccurred())
				if j == 0 {
					Expect(e).To(Equal(0.0))
					continue
				}
				expected := b * float64(j*(j+1))
				Expect(e).To(BeNumerically("~", expected, relTo(expected)))
			}
		})

		It("is strictly increasing", func() {
			prev := -1.0
			for j := 0; j < 200; j++ {
				e, err := rotor.LevelEnergy(j)
				Expect(err).NotTo(HaveOccurred())
				Expect(e).To(BeNumerically(">", prev))
				prev = e
			}
		})

		It("has degeneracy 2J+1 for either treatment", func() {
			for _, quantum := range []bool{true, false} {
				rotor.Quantum = quantum
				for j := 0; j < 100; j++ {
					g, err := rotor.LevelDegeneracy(j)
					Expect(err).NotTo(HaveOccurred())
					Expect(g).To(Equal(2*j + 1))
				}
			}
		})

		It("rejects negative quantum numbers", func() {
			_, err := rotor.LevelEnergy(-1)
			Expect(err).To(MatchError(statmech.ErrDomain))
			_, err = rotor.LevelDegeneracy(-1)
			Expect(err).To(MatchError(statmech.ErrDomain))

			var derr *statmech.DomainError
			Expect(err).To(BeAssignableToTypeOf(derr))
		})
	})

	DescribeTable("partition function",
		func(quantum bool, expected []float64) {
			rotor.Quantum = quantum
			for i, t := range temps {
				q, err := rotor.PartitionFunction(t)
				Expect(err).NotTo(HaveOccurred())
				Expect(q).To(BeNumerically("~", expected[i], relTo(expected[i])))
			}
		},
		Entry("classical", false, []float64{72.6691, 121.115, 242.230, 363.346, 484.461}),
		Entry("quantum", true, []float64{72.8360, 121.282, 242.391, 363.512, 484.627}),
	)

	It("converges from quantum to classical as T grows", func() {
		quantum := newExampleRotor(true)
		prev := math.Inf(1)
		for _, t := range temps {
			qc, err := rotor.PartitionFunction(t)
			Expect(err).NotTo(HaveOccurred())
			qq, err := quantum.PartitionFunction(t)
			Expect(err).NotTo(HaveOccurred())

			diff := math.Abs(qq-qc) / qc
			Expect(diff).To(BeNumerically("<", prev))
			prev = diff
		}
	})

	It("divides the partition function by the symmetry number", func() {
		for _, quantum := range []bool{true, false} {
			rotor.Quantum = quantum
			q2, err := rotor.PartitionFunction(400)
			Expect(err).NotTo(HaveOccurred())
			Expect(rotor.SetSymmetry(1)).To(Succeed())
			q1, err := rotor.PartitionFunction(400)
			Expect(err).NotTo(HaveOccurred())
			Expect(q1).To(BeNumerically("~", 2*q2, 1e-9*q1))
			Expect(rotor.SetSymmetry(2)).To(Succeed())
		}
	})

	DescribeTable("heat capacity",
		func(quantum bool) {
			rotor.Quantum = quantum
			for _, t := range temps {
				cv, err := rotor.HeatCapacity(t)
				Expect(err).NotTo(HaveOccurred())
				if !quantum {
					Expect(cv).To(Equal(constants.R))
				}
				Expect(cv).To(BeNumerically("~", constants.R, relTo(constants.R)))
			}
		},
		Entry("classical", false),
		Entry("quantum", true),
	)

	DescribeTable("enthalpy",
		func(quantum bool, ratios []float64) {
			rotor.Quantum = quantum
			for i, t := range temps {
				h, err := rotor.Enthalpy(t)
				Expect(err).NotTo(HaveOccurred())
				expected := ratios[i] * constants.R * t
				Expect(h).To(BeNumerically("~", expected, relTo(expected)))
				if quantum {
					Expect(h).To(BeNumerically("<", constants.R*t))
				} else {
					Expect(h).To(Equal(constants.R * t))
				}
			}
		},
		Entry("classical", false, []float64{1, 1, 1, 1, 1}),
		Entry("quantum", true, []float64{0.997705, 0.998624, 0.999312, 0.999541, 0.999656}),
	)

	DescribeTable("entropy",
		func(quantum bool) {
			rotor.Quantum = quantum
			expected := []float64{5.28592, 5.79674, 6.48989, 6.89535, 7.18304}
			for i, t := range temps {
				s, err := rotor.Entropy(t)
				Expect(err).NotTo(HaveOccurred())
				want := expected[i] * constants.R
				Expect(s).To(BeNumerically("~", want, relTo(want)))
			}
		},
		Entry("classical", false),
		Entry("quantum", true),
	)

	It("rejects non-positive temperatures", func() {
		for _, quantum := range []bool{true, false} {
			rotor.Quantum = quantum
			for _, t := range []float64{0, -300, math.NaN(), math.Inf(1)} {
				_, err := rotor.PartitionFunction(t)
				Expect(err).To(MatchError(statmech.ErrDomain))
				_, err = rotor.HeatCapacity(t)
				Expect(err).To(MatchError(statmech.ErrDomain))
				_, err = rotor.Enthalpy(t)
				Expect(err).To(MatchError(statmech.ErrDomain))
				_, err = rotor.Entropy(t)
				Expect(err).To(MatchError(statmech.ErrDomain))
			}
		}
	})

	Describe("density of states", func() {
		DescribeTable("integrates to the partition function",
			func(quantum bool, step float64) {
				rotor.Quantum = quantum
				grid := statmech.UniformGrid(step, 4000)
				rho, err := rotor.DensityOfStates(grid)
				Expect(err).NotTo(HaveOccurred())
				Expect(rho).To(HaveLen(len(grid)))

				for _, t := range []float64{300, 400, 500} {
					qact := 0.0
					for i, e := range grid {
						qact += rho[i] * math.Exp(-e/(constants.R*t)) * step
					}
					qexp, err := rotor.PartitionFunction(t)
					Expect(err).NotTo(HaveOccurred())
					Expect(qact).To(BeNumerically("~", qexp, 1e-2*qexp))

					integrated, err := statmech.IntegrateDensity(grid, rho, t)
					Expect(err).NotTo(HaveOccurred())
					Expect(integrated).To(BeNumerically("~", qact, 1e-9*qact))
				}
			},
			Entry("classical", false, 11.96),
			Entry("quantum", true, 2*11.96),
		)

		It("is flat in the classical treatment", func() {
			rho, err := rotor.DensityOfStates([]float64{0, 10, 100, 1000})
			Expect(err).NotTo(HaveOccurred())
			for _, v := range rho {
				Expect(v).To(Equal(rho[0]))
			}
		})

		It("is a comb of degeneracies in the quantum treatment", func() {
			rotor.Quantum = true
			step := 1.0
			grid := statmech.UniformGrid(step, 200)
			rho, err := rotor.DensityOfStates(grid)
			Expect(err).NotTo(HaveOccurred())

			Expect(rho[0]).To(Equal(1.0 / 2 / step))
			nonzero := 0
			for _, v := range rho {
				if v != 0 {
					nonzero++
				}
			}
			// E(J) = 17.16*J*(J+1) J/mol; J = 0..2 lie below 200 J/mol.
			Expect(nonzero).To(Equal(3))
		})

		It("accumulates levels sharing a coarse bin", func() {
			rotor.Quantum = true
			grid := []float64{0, 1e6}
			rho, err := rotor.DensityOfStates(grid)
			Expect(err).NotTo(HaveOccurred())

			// Every level below 5e5 J/mol lands in the first bin.
			spacing, err := rotor.LevelEnergy(1)
			Expect(err).NotTo(HaveOccurred())
			spacing /= 2
			count := 0.0
			for j := 0; spacing*float64(j*(j+1)) < 5e5; j++ {
				count += float64(2*j+1) / 2
			}
			Expect(rho[0] * 1e6).To(BeNumerically("~", count, 1e-9*count))
		})

		It("counts levels in closed form on very wide grids", func() {
			rotor.Quantum = true
			spacing, err := rotor.LevelEnergy(1)
			Expect(err).NotTo(HaveOccurred())
			spacing /= 2

			for _, top := range []float64{1e24, 1e300} {
				grid := []float64{0, top}
				rho, err := rotor.DensityOfStates(grid)
				Expect(err).NotTo(HaveOccurred())

				// About (E/B)/sigma states lie below the first bin edge.
				expected := top / 2 / spacing / 2
				Expect(rho[0] * top).To(BeNumerically("~", expected, 1e-6*expected))

				sum, err := rotor.SumOfStates(grid)
				Expect(err).NotTo(HaveOccurred())
				Expect(sum[1]).To(BeNumerically(">=", sum[0]))
			}
		})

		It("returns an empty result for an empty grid", func() {
			rho, err := rotor.DensityOfStates(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(rho).To(BeEmpty())
		})

		It("rejects negative and unordered grids", func() {
			for _, quantum := range []bool{true, false} {
				rotor.Quantum = quantum
				_, err := rotor.DensityOfStates([]float64{-1, 0, 1})
				Expect(err).To(MatchError(statmech.ErrDomain))
				_, err = rotor.DensityOfStates([]float64{0, 2, 1})
				Expect(err).To(MatchError(statmech.ErrDomain))
				_, err = rotor.SumOfStates([]float64{0, 0})
				Expect(err).To(MatchError(statmech.ErrDomain))
			}
		})

		It("needs two points for a quantum comb", func() {
			rotor.Quantum = true
			_, err := rotor.DensityOfStates([]float64{0})
			Expect(err).To(MatchError(statmech.ErrDomain))
		})
	})

	Describe("sum of states", func() {
		It("is the integral of the classical density", func() {
			step := 11.96
			grid := statmech.UniformGrid(step, 2000)
			rho, err := rotor.DensityOfStates(grid)
			Expect(err).NotTo(HaveOccurred())
			sum, err := rotor.SumOfStates(grid)
			Expect(err).NotTo(HaveOccurred())

			total := 0.0
			for n := 1; n < len(grid); n++ {
				total += rho[n-1] * step
				Expect(total / sum[n]).To(BeNumerically("~", 1.0, 1e-3))
			}
		})

		It("is the running count of quantum states", func() {
			rotor.Quantum = true
			step := 2 * 11.96
			grid := statmech.UniformGrid(step, 4000)
			rho, err := rotor.DensityOfStates(grid)
			Expect(err).NotTo(HaveOccurred())
			sum, err := rotor.SumOfStates(grid)
			Expect(err).NotTo(HaveOccurred())

			total := 0.0
			for n := range grid {
				total += rho[n] * step
				if sum[n] > 0 {
					Expect(total / sum[n]).To(BeNumerically("~", 1.0, 1e-3))
				}
				if n > 0 {
					Expect(sum[n]).To(BeNumerically(">=", sum[n-1]))
				}
			}
		})

		It("counts every level below the grid top", func() {
			rotor.Quantum = true
			grid := statmech.UniformGrid(1, 10001)
			sum, err := rotor.SumOfStates(grid)
			Expect(err).NotTo(HaveOccurred())

			// Levels with E(J) <= 10000 J/mol: J(J+1) <= 582.6, so J <= 23.
			// sum_{J<=23} (2J+1) = 24^2 = 576 states over sigma = 2.
			Expect(sum[len(sum)-1]).To(BeNumerically("~", 288, 1e-9))
		})
	})

	Describe("mutation", func() {
		It("switches treatment without touching inertia or symmetry", func() {
			inertia := rotor.InertiaSI()
			qc, _ := rotor.PartitionFunction(300)
			rotor.Quantum = true
			qq, _ := rotor.PartitionFunction(300)
			Expect(qq).NotTo(Equal(qc))
			Expect(rotor.InertiaSI()).To(Equal(inertia))
			Expect(rotor.Symmetry()).To(Equal(2))
		})

		It("exposes parameters by name", func() {
			params := rotor.Params()
			Expect(params["inertia"]).To(BeNumerically("~", 11.75, 1e-9))
			Expect(params["constant"]).To(BeNumerically("~", 1.434692, 5e-5))
			Expect(params["symmetry"]).To(Equal(2.0))
			Expect(params["quantum"]).To(Equal(0.0))

			Expect(rotor.SetParam("quantum", 1)).To(Succeed())
			Expect(rotor.Quantum).To(BeTrue())
			Expect(rotor.SetParam("symmetry", 1)).To(Succeed())
			Expect(rotor.Symmetry()).To(Equal(1))
			Expect(rotor.SetParam("inertia", 5)).To(Succeed())
			Expect(rotor.Inertia().Value).To(BeNumerically("~", 5, 1e-9))
			Expect(rotor.SetParam("symmetry", 1.5)).To(MatchError(statmech.ErrDomain))
			Expect(rotor.SetParam("mass", 1)).To(HaveOccurred())
		})

		It("is adjustable through the Configurable interface", func() {
			var c statmech.Configurable = rotor
			Expect(c.SetParam("constant", 2*c.Params()["constant"])).To(Succeed())
			Expect(rotor.InertiaSI()).To(BeNumerically("~", 11.75*constants.Amu*1e-20/2, 1e-52))
		})

		It("derives B as hbar^2/(2I) in wavenumbers", func() {
			b := rotor.RotationalConstant().Value
			energy := constants.Hbar * constants.Hbar / (2 * rotor.InertiaSI())
			Expect(b * constants.H * constants.CCm).To(BeNumerically("~", energy, 1e-12*energy))
		})

		It("clones into an independent equal value", func() {
			c := rotor.Clone()
			Expect(c.Equal(rotor)).To(BeTrue())
			c.Quantum = true
			Expect(rotor.Quantum).To(BeFalse())
			Expect(c.Equal(rotor)).To(BeFalse())
		})
	})
})
