package statmech_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/statmech/internal/constants"
	"github.com/san-kum/statmech/internal/statmech"
)

var _ = Describe("sweeps", func() {
	It("evaluates a thermo table in temperature order", func() {
		rotor := newExampleRotor(true)
		rows, err := statmech.ThermoTable(context.Background(), rotor, temps)
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(len(temps)))

		for i, row := range rows {
			Expect(row.T).To(Equal(temps[i]))
			q, err := rotor.PartitionFunction(row.T)
			Expect(err).NotTo(HaveOccurred())
			Expect(row.Q).To(Equal(q))
			Expect(row.Cv).To(BeNumerically("~", constants.R, 1e-4*constants.R))
		}
	})

	It("fails the whole table on a bad temperature", func() {
		rotor := newExampleRotor(true)
		_, err := statmech.ThermoTable(context.Background(), rotor, []float64{300, -1, 500})
		Expect(err).To(MatchError(statmech.ErrDomain))
	})

	It("stops on a cancelled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := statmech.ThermoTable(ctx, newExampleRotor(true), temps)
		Expect(err).To(MatchError(context.Canceled))
	})

	It("reports quantum and classical agreement", func() {
		rotor := newExampleRotor(true)
		rows, err := statmech.Correspondence(context.Background(), rotor, temps)
		Expect(err).NotTo(HaveOccurred())
		Expect(rotor.Quantum).To(BeTrue())

		for i, row := range rows {
			Expect(row.RelS).To(BeNumerically("<", 1e-4))
			Expect(row.RelCv).To(BeNumerically("<", 1e-4))
			Expect(row.Classical.H).To(Equal(constants.R * row.T))
			if i > 0 {
				Expect(row.RelQ).To(BeNumerically("<", rows[i-1].RelQ))
				Expect(row.RelH).To(BeNumerically("<", rows[i-1].RelH))
			}
		}
	})

	It("bundles density and sum of states", func() {
		rotor := newExampleRotor(true)
		grid := statmech.UniformGrid(10, 100)
		states, err := statmech.StatesTable(rotor, grid)
		Expect(err).NotTo(HaveOccurred())
		Expect(states.Density).To(HaveLen(100))
		Expect(states.Sum).To(HaveLen(100))
		Expect(states.Sum[0]).To(BeNumerically(">", 0))
	})

	It("lists levels", func() {
		levels, err := statmech.Levels(newExampleRotor(true), 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(levels).To(HaveLen(5))
		Expect(levels[0].Energy).To(Equal(0.0))
		Expect(levels[4].Degeneracy).To(Equal(9))

		levels, err = statmech.Levels(newExampleRotor(true), 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(levels).To(BeEmpty())

		_, err = statmech.Levels(newExampleRotor(true), -1)
		Expect(err).To(MatchError(statmech.ErrDomain))
	})
})
