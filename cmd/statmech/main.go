package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/statmech/internal/config"
	"github.com/san-kum/statmech/internal/constants"
	"github.com/san-kum/statmech/internal/export"
	"github.com/san-kum/statmech/internal/optim"
	"github.com/san-kum/statmech/internal/statmech"
	"github.com/san-kum/statmech/internal/storage"
	"github.com/san-kum/statmech/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool
	classical  bool
	quantum    bool
	save       bool
	temps      []float64
	levels     int
	points     int
	plotHeight int
	plotWidth  int
	svgX       string
	svgY       []string
	svgOut     string
	svgWidth   int
	svgHeight  int
	scanPoints int

	log zerolog.Logger
)

// main registers the statmech commands and executes the root command,
// exiting with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:               "statmech",
		Short:             "rigid rotor statistical mechanics",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE:              runExplore,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	flags.StringVar(&configFile, "config", "", "config file path (yaml)")
	flags.StringVar(&preset, "preset", "", "use preset rotor")
	flags.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	flags.BoolVar(&quantum, "quantum", false, "force quantum treatment")
	flags.BoolVar(&classical, "classical", false, "force classical treatment")
	flags.Float64SliceVar(&temps, "temps", nil, "temperatures in K")
	rootCmd.MarkFlagsMutuallyExclusive("quantum", "classical")

	levelsCmd := &cobra.Command{
		Use:   "levels",
		Short: "list rotational levels",
		RunE:  runLevels,
	}
	levelsCmd.Flags().IntVar(&levels, "n", 0, "number of levels")

	thermoCmd := &cobra.Command{
		Use:   "thermo",
		Short: "partition function, heat capacity, enthalpy and entropy",
		RunE:  runThermo,
	}

	dosCmd := &cobra.Command{
		Use:   "dos",
		Short: "density and sum of states",
		RunE:  runStates,
	}
	dosCmd.Flags().IntVar(&points, "points", 0, "grid points")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare quantum and classical treatments",
		RunE:  runCompare,
	}

	for _, c := range []*cobra.Command{levelsCmd, thermoCmd, dosCmd, compareCmd} {
		c.Flags().BoolVar(&save, "save", false, "store the result")
		c.Flags().IntVar(&plotHeight, "height", 12, "plot height")
		c.Flags().IntVar(&plotWidth, "width", 60, "plot width")
	}

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactive rotor explorer",
		RunE:  runExplore,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available rotor presets",
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run table to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	peakCmd := &cobra.Command{
		Use:   "peak [t_min] [t_max]",
		Short: "find the heat capacity maximum",
		Args:  cobra.ExactArgs(2),
		RunE:  runPeak,
	}
	peakCmd.Flags().IntVar(&scanPoints, "points", 500, "temperatures to scan")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export run table as an SVG chart",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgX, "x", "", "x column (default: first column)")
	exportSVGCmd.Flags().StringSliceVar(&svgY, "y", nil, "y columns (default: second column)")
	exportSVGCmd.Flags().StringVarP(&svgOut, "output", "o", "", "output file (default: stdout)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "width in px")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 400, "height in px")

	reprCmd := &cobra.Command{
		Use:   "repr [text]",
		Short: "print the text form of the rotor, or parse one",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRepr,
	}

	rootCmd.AddCommand(levelsCmd, thermoCmd, dosCmd, compareCmd, exploreCmd, presetsCmd,
		peakCmd, listCmd, showCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, reprCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup builds the logger. Environment variables may come from a .env
// file in the working directory.
func setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	env, err := config.ReadEnv()
	if err != nil {
		return err
	}

	level := zerolog.InfoLevel
	if verbose || env.Verbose {
		level = zerolog.DebugLevel
	}
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
	return nil
}

// loadConfig resolves the run configuration: defaults, then the preset,
// then the config file, then STATMECH_* variables, then flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOnto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	env, err := config.ReadEnv()
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(env); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("quantum") {
		cfg.Rotor.Quantum = quantum
	}
	if flags.Changed("classical") {
		cfg.Rotor.Quantum = !classical
	}
	if flags.Changed("temps") {
		cfg.Temperatures = temps
	}
	if cmd.Name() == "levels" && flags.Changed("n") {
		cfg.Levels = levels
	}
	if cmd.Name() == "dos" && flags.Changed("points") {
		cfg.Grid.Points = points
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("name", cfg.Name).
		Str("data", cfg.DataDir).
		Bool("quantum", cfg.Rotor.Quantum).
		Floats64("temperatures", cfg.Temperatures).
		Msg("config resolved")
	return cfg, nil
}

func loadRotor(cmd *cobra.Command) (*config.Config, *statmech.LinearRotor, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	rotor, err := cfg.BuildRotor()
	if err != nil {
		return nil, nil, err
	}
	log.Debug().Stringer("rotor", rotor).Msg("rotor built")
	return cfg, rotor, nil
}

func saveRun(cfg *config.Config, kind string, rotor *statmech.LinearRotor, table *storage.Table) error {
	if !save {
		return nil
	}
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.Name, kind, rotor, table)
	if err != nil {
		return err
	}
	log.Info().Str("run", runID).Str("kind", kind).Msg("saved")
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func header(cfg *config.Config, rotor *statmech.LinearRotor) {
	b := rotor.RotationalConstant()
	fmt.Println(viz.TitleStyle.Render(cfg.Name) + "  " + viz.Treatment(rotor.Quantum))
	fmt.Printf("B = %.6g %s, symmetry = %d\n\n", b.Value, b.Units, rotor.Symmetry())
}

func runLevels(cmd *cobra.Command, args []string) error {
	cfg, rotor, err := loadRotor(cmd)
	if err != nil {
		return err
	}

	lv, err := statmech.Levels(rotor, cfg.Levels)
	if err != nil {
		return err
	}
	table := storage.LevelsTable(lv)

	header(cfg, rotor)
	fmt.Println(viz.RenderTable(table))
	return saveRun(cfg, "levels", rotor, table)
}

func runThermo(cmd *cobra.Command, args []string) error {
	cfg, rotor, err := loadRotor(cmd)
	if err != nil {
		return err
	}

	start := time.Now()
	rows, err := statmech.ThermoTable(cmd.Context(), rotor, cfg.Temperatures)
	if err != nil {
		return err
	}
	log.Debug().Int("temperatures", len(rows)).Dur("elapsed", time.Since(start)).Msg("thermo sweep done")
	table := storage.ThermoTable(rows)

	header(cfg, rotor)
	fmt.Println(viz.RenderTable(table))
	if len(rows) > 1 {
		plot, err := viz.Plot(table, "T", "Q", plotHeight, plotWidth)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(plot)
	}
	return saveRun(cfg, "thermo", rotor, table)
}

func runStates(cmd *cobra.Command, args []string) error {
	cfg, rotor, err := loadRotor(cmd)
	if err != nil {
		return err
	}

	grid, err := cfg.Grid.Energies()
	if err != nil {
		return err
	}
	states, err := statmech.StatesTable(rotor, grid)
	if err != nil {
		return err
	}
	table := storage.StatesTable(states)

	header(cfg, rotor)
	plot, err := viz.Plot(table, "E", "sum", plotHeight, plotWidth)
	if err != nil {
		return err
	}
	fmt.Println(plot)
	fmt.Printf("\ngrid: %d points, E = %.4g .. %.4g J/mol\n\n", len(grid), grid[0], grid[len(grid)-1])

	// Integrating the density against the Boltzmann factor recovers Q.
	check := &storage.Table{Columns: []string{"T", "Q", "integral", "rel"}}
	for _, t := range cfg.Temperatures {
		q, err := rotor.PartitionFunction(t)
		if err != nil {
			return err
		}
		integral, err := statmech.IntegrateDensity(grid, states.Density, t)
		if err != nil {
			return err
		}
		check.Rows = append(check.Rows, []float64{t, q, integral, (integral - q) / q})
	}
	fmt.Println(viz.RenderTable(check))
	return saveRun(cfg, "dos", rotor, table)
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, rotor, err := loadRotor(cmd)
	if err != nil {
		return err
	}

	rows, err := statmech.Correspondence(cmd.Context(), rotor, cfg.Temperatures)
	if err != nil {
		return err
	}
	table := storage.CorrespondenceTable(rows)

	header(cfg, rotor)
	fmt.Println(viz.RenderTable(table))
	if len(rows) > 1 {
		qq, err := table.Column("Q_quantum")
		if err != nil {
			return err
		}
		qc, err := table.Column("Q_classical")
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(viz.PlotSeries([][]float64{qq, qc}, plotHeight, plotWidth, "Q quantum (magenta) vs classical (gold)"))
	}
	return saveRun(cfg, "compare", rotor, table)
}

func runExplore(cmd *cobra.Command, args []string) error {
	cfg, rotor, err := loadRotor(cmd)
	if err != nil {
		return err
	}
	model := viz.NewExplorer(cfg.Name, rotor, cfg.Temperatures[0])
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func runPeak(cmd *cobra.Command, args []string) error {
	lo, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("t_min: %w", err)
	}
	hi, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("t_max: %w", err)
	}
	if !(lo > 0) || !(hi > lo) || scanPoints < 2 {
		return fmt.Errorf("need 0 < t_min < t_max and at least 2 points")
	}

	cfg, rotor, err := loadRotor(cmd)
	if err != nil {
		return err
	}
	t, cv, err := optim.HeatCapacityPeak(cmd.Context(), rotor, optim.Linspace(lo, hi, scanPoints))
	if err != nil {
		return err
	}

	header(cfg, rotor)
	fmt.Println(viz.Metric("T", fmt.Sprintf("%.6g K", t)))
	fmt.Println(viz.Metric("Cv", fmt.Sprintf("%.6g J/mol/K", cv)))
	fmt.Println(viz.Metric("Cv/R", fmt.Sprintf("%.6g", cv/constants.R)))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tB (cm^-1)\tSYMMETRY")
	for _, name := range config.ListPresets() {
		rotor, err := config.GetPreset(name).BuildRotor()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%.5g\t%d\n", name, rotor.RotationalConstant().Value, rotor.Symmetry())
	}
	return w.Flush()
}

// runStore opens the run store under the resolved data directory.
func runStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.DataDir), nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := runStore(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tKIND\tTIME\tTREATMENT\tSYM\tROWS")

	for _, run := range runs {
		treatment := "classical"
		if run.Quantum {
			treatment = "quantum"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%d\n",
			run.ID,
			run.Name,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			treatment,
			run.Symmetry,
			run.Rows,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st, err := runStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	table, err := st.LoadTable(args[0])
	if err != nil {
		return err
	}

	fmt.Println(viz.TitleStyle.Render(meta.ID))
	fmt.Printf("%s\n%s, %s\n\n", meta.Rotor, meta.Kind, meta.Timestamp.Format(time.RFC3339))
	fmt.Println(viz.RenderTable(table))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st, err := runStore(cmd)
	if err != nil {
		return err
	}
	table, err := st.LoadTable(args[0])
	if err != nil {
		return err
	}
	return table.WriteCSV(os.Stdout)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, err := runStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	table, err := st.LoadTable(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, table)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st, err := runStore(cmd)
	if err != nil {
		return err
	}
	table, err := st.LoadTable(args[0])
	if err != nil {
		return err
	}
	if len(table.Columns) < 2 {
		return fmt.Errorf("run %s has fewer than 2 columns", args[0])
	}

	x, ys := svgX, svgY
	if x == "" {
		x = table.Columns[0]
	}
	if len(ys) == 0 {
		ys = []string{table.Columns[1]}
	}

	if svgOut == "" {
		return export.WriteSVG(os.Stdout, table, x, ys, svgWidth, svgHeight)
	}
	f, err := os.Create(svgOut)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := export.WriteSVG(f, table, x, ys, svgWidth, svgHeight); err != nil {
		return err
	}
	log.Info().Str("file", svgOut).Strs("series", ys).Msg("svg written")
	return f.Close()
}

// runRepr prints the configured rotor's text form and YAML form. With an
// argument it parses that text instead.
func runRepr(cmd *cobra.Command, args []string) error {
	var rotor *statmech.LinearRotor
	if len(args) == 1 {
		parsed, err := statmech.ParseLinearRotor(args[0])
		if err != nil {
			return err
		}
		rotor = parsed
	} else {
		_, built, err := loadRotor(cmd)
		if err != nil {
			return err
		}
		rotor = built
	}

	doc, err := yaml.Marshal(rotor)
	if err != nil {
		return err
	}
	fmt.Println(rotor.String())
	fmt.Print(string(doc))
	return nil
}
