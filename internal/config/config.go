package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/seastate/internal/storage"
	"github.com/san-kum/seastate/internal/wave"
)

const (
	DefaultDt      = 0.1
	DefaultEndTime = 400.0
	DefaultMinFreq = 0.02
	DefaultMaxFreq = 5.2
)

type Config struct {
	Wave       WaveConfig       `yaml:"wave"`
	Simulation SimulationConfig `yaml:"simulation"`
	BEM        BEMConfig        `yaml:"bem"`
	Gauges     []GaugeConfig    `yaml:"gauges,omitempty"`

	// dir resolves relative data file paths; empty means the working directory.
	dir string
}

type WaveConfig struct {
	Type           string    `yaml:"type"`
	Period         float64   `yaml:"period,omitempty"`
	Height         float64   `yaml:"height,omitempty"`
	Spectrum       string    `yaml:"spectrum,omitempty"`
	Gamma          float64   `yaml:"gamma,omitempty"`
	PhaseSeed      int64     `yaml:"phase_seed,omitempty"`
	SpectrumFile   string    `yaml:"spectrum_file,omitempty"`
	ElevationFile  string    `yaml:"elevation_file,omitempty"`
	FreqRange      []float64 `yaml:"freq_range,omitempty,flow"`
	NumFreq        int       `yaml:"num_freq,omitempty"`
	Discretization string    `yaml:"discretization,omitempty"`
	Directions     []float64 `yaml:"directions,omitempty,flow"`
	Spread         []float64 `yaml:"spread,omitempty,flow"`
}

type SimulationConfig struct {
	Dt            float64 `yaml:"dt"`
	EndTime       float64 `yaml:"end_time"`
	MaxIterations int     `yaml:"max_iterations,omitempty"`
	RampTime      float64 `yaml:"ramp_time"`
	WaterDepth    Depth   `yaml:"water_depth"`
	Gravity       float64 `yaml:"gravity"`
	Density       float64 `yaml:"density"`
}

type BEMConfig struct {
	MinFreq float64 `yaml:"min_freq"`
	MaxFreq float64 `yaml:"max_freq"`
}

type GaugeConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Depth is a water depth in m. It reads and writes "infinite" for deep water.
type Depth float64

func InfiniteDepth() Depth { return Depth(math.Inf(1)) }

func (d Depth) Infinite() bool { return math.IsInf(float64(d), 1) }

// ParseDepth accepts a positive number of metres or "infinite".
func ParseDepth(s string) (Depth, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "infinite", "inf", "deep", ".inf":
		return InfiniteDepth(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("water depth %q: want a number or \"infinite\"", s)
	}
	if v <= 0 || math.IsNaN(v) {
		return 0, fmt.Errorf("water depth must be positive, got %g", v)
	}
	return Depth(v), nil
}

func (d *Depth) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: water_depth must be a number or \"infinite\"", node.Line)
	}
	v, err := ParseDepth(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = v
	return nil
}

func (d Depth) MarshalYAML() (interface{}, error) {
	if d.Infinite() {
		return "infinite", nil
	}
	return float64(d), nil
}

func DefaultConfig() *Config {
	return &Config{
		Wave: WaveConfig{
			Type:   "regular",
			Period: 8,
			Height: 2,
		},
		Simulation: SimulationConfig{
			Dt:         DefaultDt,
			EndTime:    DefaultEndTime,
			WaterDepth: InfiniteDepth(),
			Gravity:    wave.DefaultGravity,
			Density:    wave.DefaultDensity,
		},
		BEM: BEMConfig{
			MinFreq: DefaultMinFreq,
			MaxFreq: DefaultMaxFreq,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || c.dir == "" {
		return path
	}
	return filepath.Join(c.dir, path)
}

// Params converts the simulation and BEM sections.
func (c *Config) Params() wave.Params {
	return wave.Params{
		BEMFreq:       [2]float64{c.BEM.MinFreq, c.BEM.MaxFreq},
		WaterDepth:    float64(c.Simulation.WaterDepth),
		Dt:            c.Simulation.Dt,
		MaxIterations: c.Simulation.MaxIterations,
		RampTime:      c.Simulation.RampTime,
		EndTime:       c.Simulation.EndTime,
		Gravity:       c.Simulation.Gravity,
		Density:       c.Simulation.Density,
	}
}

// WaveConfig parses names and loads any referenced data files.
func (c *Config) WaveConfig() (wave.Config, error) {
	w := c.Wave
	out := wave.Config{
		Period:     w.Period,
		Height:     w.Height,
		Gamma:      w.Gamma,
		PhaseSeed:  w.PhaseSeed,
		FreqRange:  w.FreqRange,
		NumFreq:    w.NumFreq,
		Directions: w.Directions,
		Spread:     w.Spread,
	}

	var err error
	if out.Type, err = wave.ParseType(w.Type); err != nil {
		return out, err
	}
	if w.Spectrum != "" {
		if out.Spectrum, err = wave.ParseSpectrumType(w.Spectrum); err != nil {
			return out, err
		}
	}
	if w.Discretization != "" {
		if out.Discretization, err = wave.ParseDiscretization(w.Discretization); err != nil {
			return out, err
		}
	}

	if len(c.Gauges) > len(out.Gauges) {
		return out, fmt.Errorf("at most %d gauges, got %d", len(out.Gauges), len(c.Gauges))
	}
	for i, g := range c.Gauges {
		out.Gauges[i] = wave.Gauge{X: g.X, Y: g.Y}
	}

	if w.SpectrumFile != "" {
		if out.SpectrumData, err = storage.ReadSpectrumTable(c.resolve(w.SpectrumFile)); err != nil {
			return out, fmt.Errorf("spectrum file: %w", err)
		}
	}
	if w.ElevationFile != "" {
		if out.ElevationData, err = storage.ReadElevationTable(c.resolve(w.ElevationFile)); err != nil {
			return out, fmt.Errorf("elevation file: %w", err)
		}
	}
	return out, nil
}

// ToWave returns the validated wave configuration and run parameters.
func (c *Config) ToWave() (wave.Config, wave.Params, error) {
	cfg, err := c.WaveConfig()
	if err != nil {
		return cfg, wave.Params{}, err
	}
	p := c.Params()
	if err := cfg.Validate(); err != nil {
		return cfg, p, err
	}
	if err := p.Validate(); err != nil {
		return cfg, p, err
	}
	return cfg, p, nil
}
