package wave

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// equalEnergyFineSamples is the size of the uniform reference grid that the
// equal-energy rebinning walks.
const equalEnergyFineSamples = 500000

// EffectiveRange applies the optional FreqRange override to the BEM bounds.
// An override bound outside the valid interval is ignored with a warning and
// the BEM bound is kept.
func EffectiveRange(bem [2]float64, override []float64, log *zap.Logger) (lo, hi float64) {
	lo, hi = bem[0], bem[1]
	if len(override) != 2 {
		return lo, hi
	}
	if override[0] > 0 && override[0] < bem[1] {
		lo = override[0]
	} else {
		log.Warn("frequency range minimum outside BEM data, keeping BEM minimum",
			zap.String("bound", "min"),
			zap.Float64("requested", override[0]),
			zap.Float64("kept", lo))
	}
	if override[1] > lo && override[1] <= bem[1] {
		hi = override[1]
	} else {
		log.Warn("frequency range maximum outside BEM data, keeping BEM maximum",
			zap.String("bound", "max"),
			zap.Float64("requested", override[1]),
			zap.Float64("kept", hi))
	}
	return lo, hi
}

// Discretize builds the frequency grid for a spectral configuration.
//
// Traditional grids are uniform with NumFreq points. EqualEnergy returns the
// fine uniform reference grid; ComputeSpectrum rebins it. Imported grids use
// the spectrum table frequencies that fall inside the BEM range; the
// FreqRange override does not apply to them.
func Discretize(cfg Config, bem [2]float64, log *zap.Logger) (FrequencyGrid, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cfg = cfg.normalized()
	lo, hi := EffectiveRange(bem, cfg.FreqRange, log)

	switch cfg.Discretization {
	case Traditional:
		n := cfg.NumFreq
		if n == 0 {
			n = DefaultNumFreqTraditional
		}
		if n < 2 {
			return FrequencyGrid{}, fmt.Errorf("%w: traditional grid needs at least 2 frequencies, got %d", ErrInvalidParams, n)
		}
		return uniformGrid(lo, hi, n), nil
	case EqualEnergy:
		return uniformGrid(lo, hi, equalEnergyFineSamples), nil
	case Imported:
		return importedGrid(cfg.SpectrumData, bem[0], bem[1])
	}
	return FrequencyGrid{}, &ConfigError{Field: "discretization", Type: cfg.Type, Wrapped: ErrUnknownDiscretization}
}

func uniformGrid(lo, hi float64, n int) FrequencyGrid {
	w := make([]float64, n)
	floats.Span(w, lo, hi)
	dw := make([]float64, n)
	for i := range dw {
		dw[i] = (hi - lo) / float64(n-1)
	}
	return FrequencyGrid{W: w, DW: dw}
}

// importedRows returns the table rows whose frequency (Hz) lies inside
// [lo, hi] rad/s.
func importedRows(t *SpectrumTable, lo, hi float64) []int {
	fLo, fHi := lo/(2*math.Pi), hi/(2*math.Pi)
	rows := make([]int, 0, len(t.Freq))
	for i, f := range t.Freq {
		if f >= fLo && f <= fHi {
			rows = append(rows, i)
		}
	}
	return rows
}

func importedGrid(t *SpectrumTable, lo, hi float64) (FrequencyGrid, error) {
	if t == nil {
		return FrequencyGrid{}, fmt.Errorf("%w: spectrumData", ErrMissingField)
	}
	rows := importedRows(t, lo, hi)
	n := len(rows)
	if n < 2 {
		return FrequencyGrid{}, fmt.Errorf("%w: %d imported frequencies inside [%g, %g] rad/s", ErrInvalidParams, n, lo, hi)
	}

	w := make([]float64, n)
	for i, r := range rows {
		w[i] = 2 * math.Pi * t.Freq[r]
	}
	dw := make([]float64, n)
	dw[0] = w[1] - w[0]
	for i := 1; i < n-1; i++ {
		dw[i] = (w[i+1] - w[i-1]) / 2
	}
	dw[n-1] = w[n-1] - w[n-2]
	return FrequencyGrid{W: w, DW: dw, rows: rows}, nil
}
