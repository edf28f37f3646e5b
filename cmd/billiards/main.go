package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/billiards/internal/metrics"
	"github.com/san-kum/billiards/internal/scenario"
	"github.com/san-kum/billiards/internal/storage"
	"github.com/san-kum/billiards/internal/viz"
)

var (
	dataDir    string
	configFile string
	duration   float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "billiards",
		Short: "event-driven billiard simulation lab",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".billiards", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a scenario and record its collisions",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "scenario file path (yaml)")
	runCmd.Flags().Float64Var(&duration, "time", 0, "override scenario duration")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range scenario.List() {
				fmt.Println(name)
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the collision history of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the collision log as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [preset]",
		Short: "benchmark a scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  benchScenario,
	}

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "watch a scenario in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "scenario file path (yaml)")

	rootCmd.AddCommand(runCmd, presetsCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, benchCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadScenario resolves the scenario from --config or a preset name.
func loadScenario(args []string) (*scenario.Scenario, error) {
	if configFile != "" {
		return scenario.Load(configFile)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("need a preset name or --config (presets: %v)", scenario.List())
	}
	sc := scenario.Get(args[0])
	if sc == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", args[0], scenario.List())
	}
	return sc, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(args)
	if err != nil {
		return err
	}
	if duration > 0 {
		sc.Duration = duration
	}

	sim, err := sc.Build()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	recorder := storage.NewRecorder()
	drift := metrics.NewDrift(sim)

	fmt.Printf("running %s until t=%g...\n", sc.Name, sc.Duration)
	start := time.Now()

	nBB, nBO, err := sim.Evolve(sc.Duration, drift.Observe, recorder.Callbacks(sim))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	meta := storage.RunMetadata{
		Scenario:     sc.Name,
		Duration:     sc.Duration,
		Balls:        sim.Len(),
		Obstacles:    len(sim.Obstacles()),
		BallBall:     nBB,
		BallObstacle: nBO,
		Metrics: map[string]float64{
			"kinetic_energy": metrics.KineticEnergy(sim),
			"energy_drift":   drift.Value(),
		},
	}
	runID, err := st.Save(meta, recorder.Events())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ball-ball collisions:     %d\n", nBB)
	fmt.Printf("ball-obstacle collisions: %d\n", nBO)
	fmt.Printf("kinetic energy:           %.6f\n", meta.Metrics["kinetic_energy"])
	fmt.Printf("energy drift:             %.2e\n", meta.Metrics["energy_drift"])

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tBALLS\tBB\tBO")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%d\t%d\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Balls,
			run.BallBall,
			run.BallObstacle,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	events, err := st.LoadEvents(args[0])
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return fmt.Errorf("no collisions to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("collisions: %d\n\n", len(events))

	// Cumulative collision count sampled on a uniform time grid.
	const samples = 80
	data := make([]float64, samples)
	idx := 0
	for k := 0; k < samples; k++ {
		t := meta.Duration * float64(k+1) / samples
		for idx < len(events) && events[idx].Time <= t {
			idx++
		}
		data[k] = float64(idx)
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("cumulative collisions vs time"),
	)
	fmt.Println(graph)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	events, err := st.LoadEvents(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "kind", "ball", "partner"}); err != nil {
		return err
	}
	for _, ev := range events {
		row := []string{
			strconv.FormatFloat(ev.Time, 'g', -1, 64),
			ev.Kind,
			strconv.Itoa(ev.Ball),
			strconv.Itoa(ev.Partner),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func benchScenario(cmd *cobra.Command, args []string) error {
	name := args[0]

	durations := []float64{1.0, 5.0, 10.0}

	fmt.Printf("benchmarking %s\n\n", name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tCOLLISIONS\tTIME\tCOLLISIONS/SEC")

	for _, dur := range durations {
		sc := scenario.Get(name)
		if sc == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", name, scenario.List())
		}
		sim, err := sc.Build()
		if err != nil {
			return err
		}

		start := time.Now()
		nBB, nBO, err := sim.Evolve(dur, nil, nil)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		total := nBB + nBO
		rate := float64(total) / elapsed.Seconds()
		fmt.Fprintf(w, "%.1fs\t%d\t%v\t%.0f\n", dur, total, elapsed, rate)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(args)
	if err != nil {
		return err
	}
	sim, err := sc.Build()
	if err != nil {
		return err
	}

	m := viz.NewModel(sim, sc.Name, sc.Duration)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
