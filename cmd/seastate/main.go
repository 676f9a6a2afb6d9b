package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/seastate/internal/config"
	"github.com/san-kum/seastate/internal/logging"
	"github.com/san-kum/seastate/internal/viz"
)

var (
	dataDir  string
	logLevel string
	devLog   bool
	logFile  string
	log      = zap.NewNop()

	configFile string
	preset     string

	waveType       string
	spectrum       string
	discretization string
	period         float64
	waveHeight     float64
	gamma          float64
	seed           int64
	numFreq        int
	freqRange      []float64
	directions     []float64
	spread         []float64

	dt       float64
	endTime  float64
	rampTime float64
	depth    string
	gravity  float64
	density  float64
	bemMin   float64
	bemMax   float64

	spectrumFile  string
	elevationFile string

	fieldTime   float64
	fieldExtent float64
	fieldNX     int
	fieldNY     int

	transectLength float64
	liveTheme      string
	outPath        string
	svgProfile     bool
	seedCount      int
	bandBins       int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "seastate",
		Short:         "ocean wave elevation synthesizer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts := []logging.Option{
				logging.WithLevel(logLevel),
				logging.WithDevelopment(devLog),
				logging.WithFields(map[string]interface{}{"cmd": cmd.Name()}),
			}
			if logFile != "" {
				opts = append(opts, logging.WithOutput(logFile))
			}
			l, err := logging.New(opts...)
			if err != nil {
				return err
			}
			log = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = log.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".seastate", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&devLog, "dev-log", false, "human-readable log output")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "synthesize a wave record and store it",
		Args:  cobra.NoArgs,
		RunE:  runSynthesis,
	}
	addWaveFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the elevation series of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [run_id]",
		Short: "plot the discretized spectrum of a stored run or of the given flags",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotSpectrum,
	}
	addWaveFlags(spectrumCmd)

	fieldCmd := &cobra.Command{
		Use:   "field",
		Short: "render the free surface on a square grid at one instant",
		Args:  cobra.NoArgs,
		RunE:  renderField,
	}
	addWaveFlags(fieldCmd)
	fieldCmd.Flags().Float64Var(&fieldTime, "at", 100, "evaluation time (s)")
	fieldCmd.Flags().Float64Var(&fieldExtent, "extent", 400, "grid side length centred on the origin (m)")
	fieldCmd.Flags().IntVar(&fieldNX, "nx", 72, "grid columns")
	fieldCmd.Flags().IntVar(&fieldNY, "ny", 24, "grid rows")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id | export.json]",
		Short: "spectral and wave-by-wave statistics of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&bandBins, "bands", 16, "periodogram bins averaged per band")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate the free surface along a transect",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addWaveFlags(liveCmd)
	liveCmd.Flags().Float64Var(&transectLength, "length", 300, "transect length (m)")
	liveCmd.Flags().StringVar(&liveTheme, "theme", viz.ThemeOcean.Name,
		fmt.Sprintf("color theme (%s)", strings.Join(viz.ThemeNames(), ", ")))

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, name := range config.ListPresets() {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a configuration file from the flags or a preset",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	addWaveFlags(initCmd)

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv",
		Short: "synthesize and write the elevation series as CSV",
		Args:  cobra.NoArgs,
		RunE:  exportCSV,
	}
	exportJSONCmd := &cobra.Command{
		Use:   "export-json",
		Short: "synthesize and write the run as JSON",
		Args:  cobra.NoArgs,
		RunE:  exportJSON,
	}
	exportParquetCmd := &cobra.Command{
		Use:   "export-parquet",
		Short: "synthesize and write the elevation series as Parquet",
		Args:  cobra.NoArgs,
		RunE:  exportParquet,
	}
	exportSVGCmd := &cobra.Command{
		Use:   "export-svg",
		Short: "synthesize and draw the gauge series, or a surface profile, as SVG",
		Args:  cobra.NoArgs,
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().BoolVar(&svgProfile, "profile", false, "draw the surface along a transect at --at instead of the time series")
	exportSVGCmd.Flags().Float64Var(&fieldTime, "at", 0, "profile time (s)")
	exportSVGCmd.Flags().Float64Var(&transectLength, "length", 300, "profile transect length (m)")
	for _, c := range []*cobra.Command{exportCSVCmd, exportJSONCmd, exportParquetCmd, exportSVGCmd} {
		addWaveFlags(c)
		c.Flags().StringVarP(&outPath, "out", "o", "", "output file (JSON defaults to stdout)")
	}

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "synthesize several phase realizations concurrently",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	addWaveFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&seedCount, "count", 8, "number of realizations, seeded from --seed upwards")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, spectrumCmd, fieldCmd, analyzeCmd, liveCmd,
		presetsCmd, initCmd, exportCSVCmd, exportJSONCmd, exportParquetCmd, exportSVGCmd, ensembleCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// addWaveFlags registers the flags that describe a wave environment. Flags
// override the preset and the config file only when set explicitly.
func addWaveFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")

	f.StringVar(&waveType, "type", "regular", "wave type: noWave, noWaveCIC, regular, regularCIC, irregular, spectrumImport, etaImport")
	f.StringVar(&spectrum, "spectrum", "PM", "spectrum: PM, JS, imported")
	f.StringVar(&discretization, "discretization", "", "frequency grid: traditional, equalEnergy, imported")
	f.Float64Var(&period, "period", 8, "peak or regular period (s)")
	f.Float64Var(&waveHeight, "height", 2, "significant or regular height (m)")
	f.Float64Var(&gamma, "gamma", 0, "JONSWAP peak enhancement, 0 estimates it")
	f.Int64Var(&seed, "seed", 0, "phase seed, 0 draws a random one")
	f.IntVar(&numFreq, "num-freq", 0, "number of frequencies, 0 uses the default")
	f.Float64SliceVar(&freqRange, "freq-range", nil, "frequency range min,max (rad/s)")
	f.Float64SliceVar(&directions, "directions", nil, "wave directions (degrees)")
	f.Float64SliceVar(&spread, "spread", nil, "direction weights")
	f.StringVar(&spectrumFile, "spectrum-file", "", "spectrum table: frequency (Hz), density, optional phase")
	f.StringVar(&elevationFile, "elevation-file", "", "elevation table: time (s), elevation (m)")

	f.Float64Var(&dt, "dt", config.DefaultDt, "time step (s)")
	f.Float64Var(&endTime, "time", config.DefaultEndTime, "end time (s)")
	f.Float64Var(&rampTime, "ramp", 0, "ramp time (s)")
	f.StringVar(&depth, "depth", "infinite", "water depth (m) or infinite")
	f.Float64Var(&gravity, "gravity", 9.81, "gravitational acceleration (m/s^2)")
	f.Float64Var(&density, "density", 1000, "water density (kg/m^3)")
	f.Float64Var(&bemMin, "bem-min", config.DefaultMinFreq, "lowest frequency with BEM data (rad/s)")
	f.Float64Var(&bemMax, "bem-max", config.DefaultMaxFreq, "highest frequency with BEM data (rad/s)")
}
