package wave

import (
	"fmt"
	"math"
)

const (
	DefaultNumFreqTraditional = 1000
	DefaultNumFreqEqualEnergy = 500
	DefaultGravity            = 9.81
	DefaultDensity            = 1000.0
	// VisualizationDepth replaces an infinite depth wherever a finite one is drawn.
	VisualizationDepth = 200.0
)

// Config describes the requested wave environment. It is built once from
// external input and never mutated by the pipeline.
type Config struct {
	Type   Type
	Period float64 // peak or regular period T (s); 0 means undefined
	Height float64 // significant or regular height H (m)

	Spectrum SpectrumType
	// Gamma is the JONSWAP peak enhancement factor; 0 estimates it from T/sqrt(H).
	Gamma     float64
	PhaseSeed int64

	SpectrumData  *SpectrumTable
	ElevationData *ElevationTable

	// FreqRange optionally narrows the BEM range: nil or [min, max] in rad/s.
	FreqRange      []float64
	NumFreq        int
	Discretization Discretization

	// Directions are incident directions in degrees, Spread their weights.
	Directions []float64
	Spread     []float64

	Gauges [3]Gauge
}

// normalized returns a copy with variant-implied fields filled in.
func (c Config) normalized() Config {
	if c.Type == SpectrumImport {
		c.Spectrum = ImportedSpectrum
	}
	if c.Spectrum == ImportedSpectrum {
		c.Discretization = Imported
	}
	if c.Type.Spectral() && c.Discretization == discretizationUnset {
		c.Discretization = EqualEnergy
	}
	if len(c.Directions) == 0 {
		c.Directions = []float64{0}
	}
	if len(c.Spread) == 0 && len(c.Directions) == 1 {
		c.Spread = []float64{1}
	}
	return c
}

// Validate reports configuration errors for the selected wave type.
func (c Config) Validate() error {
	c = c.normalized()

	if _, ok := typeNames[c.Type]; !ok {
		return &ConfigError{Field: "type", Type: c.Type, Wrapped: ErrUnknownWaveType}
	}
	if len(c.Directions) != len(c.Spread) {
		return &ConfigError{
			Field:   fmt.Sprintf("spread (%d directions, %d weights)", len(c.Directions), len(c.Spread)),
			Type:    c.Type,
			Wrapped: ErrDirectionSpread,
		}
	}
	if len(c.FreqRange) != 0 && len(c.FreqRange) != 2 {
		return &ConfigError{Field: "freqRange", Type: c.Type, Wrapped: ErrInvalidParams}
	}

	switch c.Type {
	case NoWave:
		if c.Period <= 0 {
			return missing(c.Type, "period")
		}
	case NoWaveCIC:
	case Regular, RegularCIC:
		if c.Period <= 0 {
			return missing(c.Type, "period")
		}
		if c.Height <= 0 {
			return missing(c.Type, "height")
		}
	case Irregular, SpectrumImport:
		return c.validateSpectral()
	case EtaImport:
		if c.ElevationData == nil || len(c.ElevationData.Time) < 2 {
			return missing(c.Type, "elevationData")
		}
		if len(c.ElevationData.Time) != len(c.ElevationData.Eta) {
			return &ConfigError{Field: "elevationData", Type: c.Type, Wrapped: ErrInvalidParams}
		}
	}
	return nil
}

func (c Config) validateSpectral() error {
	switch c.Spectrum {
	case spectrumUnset:
		return missing(c.Type, "spectrum")
	case Bretschneider:
		return &ConfigError{Field: "spectrum", Type: c.Type, Wrapped: ErrUnsupportedSpectrum}
	case PiersonMoskowitz, JONSWAP, ImportedSpectrum:
	default:
		return &ConfigError{Field: "spectrum", Type: c.Type, Wrapped: ErrUnknownSpectrum}
	}
	switch c.Discretization {
	case Traditional, EqualEnergy, Imported:
	default:
		return &ConfigError{Field: "discretization", Type: c.Type, Wrapped: ErrUnknownDiscretization}
	}
	if c.Gamma < 0 || math.IsNaN(c.Gamma) {
		return &ConfigError{Field: "gamma", Type: c.Type, Wrapped: ErrInvalidParams}
	}

	imported := c.Spectrum == ImportedSpectrum || c.Discretization == Imported
	if imported {
		if c.SpectrumData == nil || len(c.SpectrumData.Freq) < 2 {
			return missing(c.Type, "spectrumData")
		}
		if len(c.SpectrumData.Freq) != len(c.SpectrumData.Density) {
			return &ConfigError{Field: "spectrumData", Type: c.Type, Wrapped: ErrInvalidParams}
		}
	}
	if c.Spectrum == ImportedSpectrum {
		return nil
	}
	if c.Period <= 0 {
		return missing(c.Type, "period")
	}
	if c.Height <= 0 {
		return missing(c.Type, "height")
	}
	return nil
}

// Params are the run parameters handed over by the hydrodynamic caller.
type Params struct {
	// BEMFreq is the [min, max] frequency range (rad/s) with BEM coefficients.
	BEMFreq [2]float64
	// WaterDepth in m; math.Inf(1) means infinite (deep water).
	WaterDepth    float64
	Dt            float64
	MaxIterations int
	RampTime      float64
	EndTime       float64
	Gravity       float64
	Density       float64
}

// DefaultParams returns a 400 s run at 0.1 s in infinitely deep water.
func DefaultParams() Params {
	return Params{
		BEMFreq:    [2]float64{0.02, 5.2},
		WaterDepth: math.Inf(1),
		Dt:         0.1,
		EndTime:    400,
		Gravity:    DefaultGravity,
		Density:    DefaultDensity,
	}
}

// Steps returns the number of time steps after t=0.
func (p Params) Steps() int {
	if p.MaxIterations > 0 {
		return p.MaxIterations
	}
	return int(math.Round(p.EndTime / p.Dt))
}

// DeepWater reports whether the depth is the infinite sentinel.
func (p Params) DeepWater() bool {
	return math.IsInf(p.WaterDepth, 1)
}

// Depth returns the finite depth used for drawing.
func (p Params) Depth() float64 {
	if p.DeepWater() {
		return VisualizationDepth
	}
	return p.WaterDepth
}

func (p Params) Validate() error {
	switch {
	case p.Dt <= 0:
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidParams, p.Dt)
	case p.MaxIterations < 0:
		return fmt.Errorf("%w: max iterations must not be negative, got %d", ErrInvalidParams, p.MaxIterations)
	case p.MaxIterations == 0 && p.EndTime <= 0:
		return fmt.Errorf("%w: end time must be positive, got %g", ErrInvalidParams, p.EndTime)
	case p.RampTime < 0:
		return fmt.Errorf("%w: ramp time must not be negative, got %g", ErrInvalidParams, p.RampTime)
	case p.Gravity <= 0:
		return fmt.Errorf("%w: gravity must be positive, got %g", ErrInvalidParams, p.Gravity)
	case p.Density <= 0:
		return fmt.Errorf("%w: density must be positive, got %g", ErrInvalidParams, p.Density)
	case p.WaterDepth <= 0 || math.IsNaN(p.WaterDepth):
		return fmt.Errorf("%w: water depth must be positive, got %g", ErrInvalidParams, p.WaterDepth)
	case p.BEMFreq[0] <= 0 || p.BEMFreq[1] <= p.BEMFreq[0]:
		return fmt.Errorf("%w: BEM frequency range [%g, %g]", ErrInvalidParams, p.BEMFreq[0], p.BEMFreq[1])
	}
	return nil
}
