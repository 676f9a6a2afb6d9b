package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/seastate/internal/analysis"
	"github.com/san-kum/seastate/internal/config"
	"github.com/san-kum/seastate/internal/storage"
	"github.com/san-kum/seastate/internal/viz"
	"github.com/san-kum/seastate/internal/wave"
)

// loadConfig layers the preset, the config file and explicitly set flags,
// in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	f := cmd.Flags()
	w := &cfg.Wave
	if f.Changed("type") {
		w.Type = waveType
	}
	if f.Changed("spectrum") || w.Spectrum == "" {
		w.Spectrum = spectrum
	}
	if f.Changed("discretization") {
		w.Discretization = discretization
	}
	if f.Changed("period") {
		w.Period = period
	}
	if f.Changed("height") {
		w.Height = waveHeight
	}
	if f.Changed("gamma") {
		w.Gamma = gamma
	}
	if f.Changed("seed") {
		w.PhaseSeed = seed
	}
	if f.Changed("num-freq") {
		w.NumFreq = numFreq
	}
	if f.Changed("freq-range") {
		w.FreqRange = freqRange
	}
	if f.Changed("directions") {
		w.Directions = directions
	}
	if f.Changed("spread") {
		w.Spread = spread
	}
	if f.Changed("spectrum-file") {
		w.SpectrumFile = spectrumFile
	}
	if f.Changed("elevation-file") {
		w.ElevationFile = elevationFile
	}

	s := &cfg.Simulation
	if f.Changed("dt") {
		s.Dt = dt
	}
	if f.Changed("time") {
		s.EndTime = endTime
	}
	if f.Changed("ramp") {
		s.RampTime = rampTime
	}
	if f.Changed("depth") {
		d, err := config.ParseDepth(depth)
		if err != nil {
			return nil, err
		}
		s.WaterDepth = d
	}
	if f.Changed("gravity") {
		s.Gravity = gravity
	}
	if f.Changed("density") {
		s.Density = density
	}
	if f.Changed("bem-min") {
		cfg.BEM.MinFreq = bemMin
	}
	if f.Changed("bem-max") {
		cfg.BEM.MaxFreq = bemMax
	}
	return cfg, nil
}

func buildState(cmd *cobra.Command) (*wave.State, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	wc, p, err := cfg.ToWave()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	st, err := wave.Setup(wc, p, wave.WithLogger(log))
	if err != nil {
		return nil, err
	}
	log.Info("wave state ready",
		zap.Stringer("type", wc.Type),
		zap.Int("samples", st.Origin.Len()),
		zap.Duration("elapsed", time.Since(start)))
	return st, nil
}

// runMetrics summarizes the origin record of a run.
func runMetrics(st *wave.State) map[string]float64 {
	m := map[string]float64{
		"hs":    analysis.SignificantHeight(st.Origin.Eta),
		"power": st.Power,
	}
	w, s := analysis.Periodogram(st.Origin.Eta, st.Params.Dt)
	if sp := analysis.Stats(w, s); sp.Hm0 > 0 {
		m["hm0"] = sp.Hm0
		m["te"] = sp.EnergyPeriod
	}
	ws := analysis.Summarize(analysis.ZeroUpCrossings(st.Origin.Time, st.Origin.Eta))
	if ws.Count > 0 {
		m["hmax"] = ws.HMax
		m["h13"] = ws.H13
		m["tz"] = ws.Tz
	}
	return m
}

func metricRows(m map[string]float64) []viz.Metric {
	order := []struct{ key, label, unit string }{
		{"hs", "Hs (4 std)", "m"},
		{"hm0", "Hm0", "m"},
		{"hmax", "Hmax", "m"},
		{"h13", "H1/3", "m"},
		{"tz", "Tz", "s"},
		{"te", "Te", "s"},
	}
	rows := make([]viz.Metric, 0, len(order))
	for _, o := range order {
		if v, ok := m[o.key]; ok {
			rows = append(rows, viz.Metric{Label: o.label, Value: fmt.Sprintf("%.3f %s", v, o.unit)})
		}
	}
	return rows
}

func runSynthesis(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}

	start := time.Now()
	st, err := buildState(cmd)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	metrics := runMetrics(st)
	runID, err := store.Save(st, metrics)
	if err != nil {
		return err
	}

	fmt.Println(viz.Summary(st, metricRows(metrics)...))
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tSPECTRUM\tTIME\tH\tT\tDEPTH\tHS\tPOWER")

	for _, run := range runs {
		spec := run.Spectrum
		if spec == "" {
			spec = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fm\t%.2fs\t%s\t%.2fm\t%.0fW/m\n",
			run.ID,
			run.WaveType,
			spec,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Height,
			run.Period,
			run.WaterDepth,
			run.Metrics["hs"],
			run.Power,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	store := storage.New(dataDir)
	meta, err := store.Load(runID)
	if err != nil {
		return err
	}
	origin, gauges, err := store.LoadElevation(runID)
	if err != nil {
		return err
	}
	if origin.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("type: %s\n", meta.WaveType)
	fmt.Printf("samples: %d\n\n", origin.Len())

	fmt.Println(viz.PlotSeries(origin, 80, 10, "eta at origin (m)"))
	fmt.Println()
	fmt.Println(viz.PlotGauges(origin, gauges, 80, 10))
	return nil
}

func plotSpectrum(cmd *cobra.Command, args []string) error {
	var w, s []float64
	caption := "S(w) (m^2 s/rad)"

	if len(args) == 1 {
		rows, err := storage.New(dataDir).LoadSpectrum(args[0])
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("run %s has no stored spectrum", args[0])
			}
			return err
		}
		w, s = rows.W, rows.S
	} else {
		st, err := buildState(cmd)
		if err != nil {
			return err
		}
		if !st.Config.Type.Spectral() {
			return fmt.Errorf("wave type %s has no spectrum", st.Config.Type)
		}
		w, s = st.Grid.W, st.Spectrum.S
		fmt.Println(viz.Summary(st))
	}

	sp := analysis.Stats(w, s)
	fmt.Println(viz.PlotSpectrum(w, s, 80, 12, caption))
	fmt.Printf("\nHm0 %.3f m  Tp %.2f s  Te %.2f s  T01 %.2f s\n", sp.Hm0, sp.PeakPeriod, sp.EnergyPeriod, sp.MeanPeriod)
	return nil
}

func renderField(cmd *cobra.Command, args []string) error {
	if fieldNX < 2 || fieldNY < 2 {
		return fmt.Errorf("grid needs at least 2x2 points, got %dx%d", fieldNX, fieldNY)
	}
	st, err := buildState(cmd)
	if err != nil {
		return err
	}

	xs := make([]float64, fieldNX)
	ys := make([]float64, fieldNY)
	floats.Span(xs, -fieldExtent/2, fieldExtent/2)
	floats.Span(ys, -fieldExtent/2, fieldExtent/2)
	x, y := wave.Meshgrid(xs, ys)

	eta, err := st.EvaluateField(fieldTime, x, y)
	if err != nil {
		return err
	}

	amp := 0.0
	for _, row := range eta {
		amp = math.Max(amp, math.Max(math.Abs(floats.Max(row)), math.Abs(floats.Min(row))))
	}
	if amp == 0 {
		fmt.Println("flat surface")
		return nil
	}

	fmt.Printf("eta at t=%gs over %gm x %gm (±%.3f m)\n\n", fieldTime, fieldExtent, fieldExtent, amp)
	fmt.Print(viz.Heatmap(eta, amp))
	return nil
}

// loadOrigin returns the origin record, its time step and wave type from a
// stored run or from a file written by export-json.
func loadOrigin(ref string) (wave.ElevationSeries, float64, string, error) {
	if strings.HasSuffix(ref, ".json") {
		data, err := storage.ReadJSON(ref)
		if err != nil {
			return wave.ElevationSeries{}, 0, "", err
		}
		if len(data.Time) != len(data.Origin) {
			return wave.ElevationSeries{}, 0, "", fmt.Errorf("%s: %d times for %d samples", ref, len(data.Time), len(data.Origin))
		}
		return wave.ElevationSeries{Time: data.Time, Eta: data.Origin}, data.Dt, data.WaveType, nil
	}

	store := storage.New(dataDir)
	meta, err := store.Load(ref)
	if err != nil {
		return wave.ElevationSeries{}, 0, "", err
	}
	origin, _, err := store.LoadElevation(ref)
	if err != nil {
		return wave.ElevationSeries{}, 0, "", err
	}
	return origin, meta.Dt, meta.WaveType, nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	ref := args[0]
	origin, dt, waveType, err := loadOrigin(ref)
	if err != nil {
		return err
	}
	if origin.Len() < 2 {
		return fmt.Errorf("run %s has too few samples", ref)
	}

	w, s := analysis.Periodogram(origin.Eta, dt)
	w, s = analysis.BandAverage(w, s, bandBins)
	sp := analysis.Stats(w, s)
	waves := analysis.ZeroUpCrossings(origin.Time, origin.Eta)
	ws := analysis.Summarize(waves)

	fmt.Printf("run: %s (%s)\n\n", ref, waveType)
	rows := []viz.Metric{
		{Label: "Hs (4 std)", Value: fmt.Sprintf("%.3f m", analysis.SignificantHeight(origin.Eta))},
		{Label: "Hm0", Value: fmt.Sprintf("%.3f m", sp.Hm0)},
		{Label: "Tp", Value: fmt.Sprintf("%.2f s", sp.PeakPeriod)},
		{Label: "Te", Value: fmt.Sprintf("%.2f s", sp.EnergyPeriod)},
		{Label: "waves", Value: fmt.Sprintf("%d", ws.Count)},
		{Label: "Hmax", Value: fmt.Sprintf("%.3f m", ws.HMax)},
		{Label: "H1/3", Value: fmt.Sprintf("%.3f m", ws.H13)},
		{Label: "Tz", Value: fmt.Sprintf("%.2f s", ws.Tz)},
	}
	for _, r := range rows {
		fmt.Println(viz.MetricLabel.Render(r.Label) + viz.MetricValue.Render(r.Value))
	}

	fmt.Println()
	fmt.Println(viz.PlotSpectrum(w, s, 80, 10, "estimated S(w) (m^2 s/rad)"))
	fmt.Println()
	fmt.Println("wave height (m) vs period (s)")
	fmt.Print(analysis.ScatterASCII(waves, 60, 16))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	theme, ok := viz.LookupTheme(liveTheme)
	if !ok {
		return fmt.Errorf("unknown theme: %s (available: %v)", liveTheme, viz.ThemeNames())
	}
	st, err := buildState(cmd)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(st, transectLength).WithTheme(theme), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if _, _, err := cfg.ToWave(); err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st, err := buildState(cmd)
	if err != nil {
		return err
	}
	if outPath == "" {
		return storage.WriteElevationCSV(os.Stdout, st.Origin, st.Gauges)
	}
	if err := storage.ExportCSV(outPath, st); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outPath)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, err := buildState(cmd)
	if err != nil {
		return err
	}
	metrics := runMetrics(st)
	if outPath == "" {
		return storage.WriteJSON(os.Stdout, st, metrics)
	}
	if err := storage.ExportJSON(outPath, st, metrics); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outPath)
	return nil
}

func exportParquet(cmd *cobra.Command, args []string) error {
	if outPath == "" {
		return fmt.Errorf("parquet export needs --out")
	}
	st, err := buildState(cmd)
	if err != nil {
		return err
	}
	if err := storage.ExportParquet(outPath, st); err != nil {
		return err
	}
	fmt.Printf("exported %d rows to %s\n", st.Origin.Len(), outPath)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st, err := buildState(cmd)
	if err != nil {
		return err
	}
	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create svg: %w", err)
		}
		defer f.Close()
		out = f
	}

	if svgProfile {
		c, err := viz.ProfileCanvas(st, fieldTime, transectLength, 120, 20)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, viz.CanvasSVG(c, 4))
		return err
	}

	series := []wave.ElevationSeries{st.Origin}
	for i, g := range st.Config.Gauges {
		if g != (wave.Gauge{}) {
			series = append(series, st.Gauges[i])
		}
	}
	return viz.SeriesSVG(out, series, 1200, 400)
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	if seedCount < 1 {
		return fmt.Errorf("count must be positive, got %d", seedCount)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	wc, p, err := cfg.ToWave()
	if err != nil {
		return err
	}

	first := wc.PhaseSeed
	if first == 0 {
		first = 1
	}
	seeds := make([]int64, seedCount)
	for i := range seeds {
		seeds[i] = first + int64(i)
	}

	start := time.Now()
	states, err := wave.Ensemble(wc, p, seeds, wave.WithLogger(log))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	hs := make([]float64, len(states))
	hmax := make([]float64, len(states))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tHS\tHMAX\tTZ")
	for i, st := range states {
		ws := analysis.Summarize(analysis.ZeroUpCrossings(st.Origin.Time, st.Origin.Eta))
		hs[i] = analysis.SignificantHeight(st.Origin.Eta)
		hmax[i] = ws.HMax
		fmt.Fprintf(w, "%d\t%.3fm\t%.3fm\t%.2fs\n", seeds[i], hs[i], ws.HMax, ws.Tz)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	mean, std := stat.MeanStdDev(hs, nil)
	fmt.Printf("\nHs %.3f ± %.3f m over %d realizations (%v)\n", mean, std, len(states), elapsed)
	fmt.Printf("largest wave %.3f m\n", floats.Max(hmax))
	return nil
}
