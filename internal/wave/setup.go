package wave

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// State is the derived wave state of one run. It is computed once by Setup
// and only read afterwards.
type State struct {
	Config Config
	Params Params

	Grid     FrequencyGrid
	K        []float64
	Spectrum SpectrumState
	// Power is the wave power per unit crest length (W/m).
	Power float64
	Gamma float64
	Phase PhaseMatrix
	// Amplitude is the regular-wave amplitude H/2; 0 for other types.
	Amplitude float64

	Origin ElevationSeries
	Gauges [3]ElevationSeries

	field Wavefield
}

type setupOptions struct {
	log *zap.Logger
	src *rand.Rand
}

// Option configures Setup.
type Option func(*setupOptions)

// WithLogger routes range warnings and stage timings to log.
func WithLogger(log *zap.Logger) Option {
	return func(o *setupOptions) { o.log = log }
}

// WithRand injects the phase random source, overriding Config.PhaseSeed.
func WithRand(src *rand.Rand) Option {
	return func(o *setupOptions) { o.src = src }
}

// Setup validates the configuration and runs the pipeline: frequency
// discretization, spectrum, dispersion, phases and time series synthesis.
// Spectral stages are skipped for non-spectral wave types.
func Setup(cfg Config, p Params, opts ...Option) (*State, error) {
	o := setupOptions{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()

	st := &State{Config: cfg, Params: p}
	start := time.Now()

	switch cfg.Type {
	case NoWave, NoWaveCIC, Regular, RegularCIC:
		st.setupRegular(p)
	case Irregular, SpectrumImport:
		if err := st.setupSpectral(p, o); err != nil {
			return nil, err
		}
	case EtaImport:
		origin, gauges, err := SynthesizeImported(cfg.ElevationData, p)
		if err != nil {
			return nil, fmt.Errorf("interpolate elevation: %w", err)
		}
		st.Origin, st.Gauges = origin, gauges
		o.log.Debug("wave setup complete",
			zap.Stringer("type", cfg.Type),
			zap.Int("steps", origin.Len()),
			zap.Duration("elapsed", time.Since(start)))
		return st, nil
	default:
		return nil, &ConfigError{Field: "type", Type: cfg.Type, Wrapped: ErrUnknownWaveType}
	}

	st.Origin, st.Gauges = Synthesize(st.field, cfg.Gauges, p)
	o.log.Debug("wave setup complete",
		zap.Stringer("type", cfg.Type),
		zap.Int("numFreq", st.Grid.Len()),
		zap.Int("components", st.field.Len()),
		zap.Int("steps", st.Origin.Len()),
		zap.Float64("power", st.Power),
		zap.Duration("elapsed", time.Since(start)))
	return st, nil
}

// setupRegular covers single-frequency types. No-wave types keep a resolved
// frequency and wave number but zero amplitude.
func (st *State) setupRegular(p Params) {
	cfg := st.Config
	var w float64
	switch {
	case cfg.Period > 0:
		w = 2 * math.Pi / cfg.Period
	default:
		w = p.BEMFreq[0]
	}
	k := WaveNumber(w, p.Gravity, p.WaterDepth, p.DeepWater())

	// nominal unit bandwidth: S*dw is the component energy A^2/2
	st.Grid = FrequencyGrid{W: []float64{w}, DW: []float64{1}}
	st.K = []float64{k}
	if cfg.Type == Regular || cfg.Type == RegularCIC {
		st.Amplitude = cfg.Height / 2
		st.Power = WavePower([]float64{st.Amplitude * st.Amplitude / 2}, st.Grid, st.K, p)
	}
	st.field = regularField(w, k, st.Amplitude, cfg.Directions[0])
}

func (st *State) setupSpectral(p Params, o setupOptions) error {
	cfg := st.Config
	stage := time.Now()

	grid, err := Discretize(cfg, p.BEMFreq, o.log)
	if err != nil {
		return err
	}
	o.log.Debug("frequency grid built",
		zap.Stringer("discretization", cfg.Discretization),
		zap.Int("samples", grid.Len()),
		zap.Duration("elapsed", time.Since(stage)))

	stage = time.Now()
	spec, err := ComputeSpectrum(cfg, grid, p)
	if err != nil {
		return err
	}
	o.log.Debug("spectrum computed",
		zap.Stringer("spectrum", cfg.Spectrum),
		zap.Int("numFreq", spec.Grid.Len()),
		zap.Float64("gamma", spec.Gamma),
		zap.Duration("elapsed", time.Since(stage)))

	st.Grid = spec.Grid
	st.Spectrum = spec.State
	st.Power = spec.Power
	st.Gamma = spec.Gamma
	st.K = WaveNumbers(st.Grid.W, p.Gravity, p.WaterDepth, p.DeepWater())

	src := o.src
	if src == nil {
		src = NewPhaseSource(cfg.PhaseSeed)
	}
	st.Phase = GeneratePhases(cfg, st.Grid, src)
	st.field = spectralField(cfg, st.Grid, st.K, st.Spectrum, st.Phase)
	return nil
}

// Field returns the wavefield the time series were synthesized from.
func (st *State) Field() Wavefield { return st.field }
