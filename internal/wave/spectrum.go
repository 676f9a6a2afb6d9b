package wave

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

const (
	jonswapSigmaLow  = 0.07
	jonswapSigmaHigh = 0.09
)

// Spectrum is the output of ComputeSpectrum. Grid is the final frequency
// grid, rebinned when the discretization is EqualEnergy.
type Spectrum struct {
	Grid  FrequencyGrid
	State SpectrumState
	// Power is the wave power per unit crest length (W/m), evaluated on the
	// grid before rebinning.
	Power float64
	// Gamma is the JONSWAP peak enhancement factor used, 0 otherwise.
	Gamma float64
}

// PiersonMoskowitzDensity returns the PM density (m^2/Hz) at frequency f (Hz) for
// peak period T and significant height H.
func PiersonMoskowitzDensity(f, T, H float64) float64 {
	if f <= 0 {
		return 0
	}
	b := 1.25 / math.Pow(T, 4)
	a := b * (H / 2) * (H / 2)
	return a * math.Pow(f, -5) * math.Exp(-b*math.Pow(f, -4))
}

// EstimateGamma picks the JONSWAP peak enhancement factor from T/sqrt(H).
func EstimateGamma(T, H float64) float64 {
	r := T / math.Sqrt(H)
	switch {
	case r <= 3.6:
		return 5
	case r > 5:
		return 1
	default:
		return math.Exp(5.75 - 1.15*r)
	}
}

// JONSWAPDensity returns the JONSWAP density (m^2/Hz) at f (Hz).
func JONSWAPDensity(f, T, H, gamma float64) float64 {
	fp := 1 / T
	sigma := jonswapSigmaLow
	if f > fp {
		sigma = jonswapSigmaHigh
	}
	g := math.Pow(gamma, math.Exp(-(f-fp)*(f-fp)/(2*sigma*sigma*fp*fp)))
	c := 1 - 0.287*math.Log(gamma)
	return c * g * PiersonMoskowitzDensity(f, T, H)
}

// ComputeSpectrum evaluates the spectral density on grid, the wave power and,
// for EqualEnergy discretization, rebins the grid into NumFreq bins of equal
// energy.
func ComputeSpectrum(cfg Config, grid FrequencyGrid, p Params) (Spectrum, error) {
	cfg = cfg.normalized()
	n := grid.Len()
	sHz := make([]float64, n)
	var gamma float64

	switch cfg.Spectrum {
	case PiersonMoskowitz:
		for i, w := range grid.W {
			sHz[i] = PiersonMoskowitzDensity(w/(2*math.Pi), cfg.Period, cfg.Height)
		}
	case JONSWAP:
		gamma = cfg.Gamma
		if gamma == 0 {
			gamma = EstimateGamma(cfg.Period, cfg.Height)
		}
		for i, w := range grid.W {
			sHz[i] = JONSWAPDensity(w/(2*math.Pi), cfg.Period, cfg.Height, gamma)
		}
	case ImportedSpectrum:
		if len(grid.rows) != n {
			return Spectrum{}, fmt.Errorf("%w: imported spectrum needs an imported frequency grid", ErrInvalidParams)
		}
		for i, r := range grid.rows {
			sHz[i] = cfg.SpectrumData.Density[r]
		}
	case Bretschneider:
		return Spectrum{}, &ConfigError{Field: "spectrum", Type: cfg.Type, Wrapped: ErrUnsupportedSpectrum}
	default:
		return Spectrum{}, &ConfigError{Field: "spectrum", Type: cfg.Type, Wrapped: ErrUnknownSpectrum}
	}

	s := make([]float64, n)
	floats.ScaleTo(s, 1/(2*math.Pi), sHz)

	k := WaveNumbers(grid.W, p.Gravity, p.WaterDepth, p.DeepWater())
	out := Spectrum{
		Grid:  grid,
		Power: WavePower(s, grid, k, p),
		Gamma: gamma,
	}

	if cfg.Discretization == EqualEnergy {
		numFreq := cfg.NumFreq
		if numFreq == 0 {
			numFreq = DefaultNumFreqEqualEnergy
		}
		rebinned, rs, err := rebinEqualEnergy(grid, sHz, numFreq)
		if err != nil {
			return Spectrum{}, err
		}
		out.Grid, s = rebinned, rs
	}

	a := make([]float64, len(s))
	floats.ScaleTo(a, 2, s)
	out.State = SpectrumState{S: s, A: a}
	return out, nil
}

// WavePower returns the power per unit crest length carried by spectrum s
// (m^2 s/rad) on grid with wave numbers k.
func WavePower(s []float64, grid FrequencyGrid, k []float64, p Params) float64 {
	rho, g := p.Density, p.Gravity
	var sum float64
	if p.DeepWater() {
		for i, w := range grid.W {
			if w > 0 {
				sum += s[i] * grid.DW[i] / w
			}
		}
		return 0.5 * rho * g * g * sum
	}
	d := p.WaterDepth
	for i := range grid.W {
		if k[i] <= 0 {
			continue
		}
		kd := k[i] * d
		c := math.Sqrt(g / k[i] * math.Tanh(kd))
		sum += s[i] * grid.DW[i] * c * (1 + 2*kd/math.Sinh(2*kd))
	}
	return 0.5 * rho * g * sum
}

// cumulativeEnergy returns the cumulative trapezoidal integral of s over f,
// starting at 0.
func cumulativeEnergy(f, s []float64) []float64 {
	inc := make([]float64, len(f))
	for i := 1; i < len(f); i++ {
		inc[i] = 0.5 * (s[i] + s[i-1]) * (f[i] - f[i-1])
	}
	return floats.CumSum(inc, inc)
}

// equalEnergyBoundaries returns numFreq+2 indices into sf: 0, the numFreq
// interior boundaries and len(sf)-1. Interior boundary k is the sample whose
// cumulative energy is nearest k*total/(numFreq+1). Boundaries are strictly
// increasing.
func equalEnergyBoundaries(sf []float64, numFreq int) []int {
	n := len(sf)
	numBins := numFreq + 1
	target := sf[n-1] / float64(numBins)

	b := make([]int, numBins+1)
	j := 0
	for kk := 1; kk < numBins; kk++ {
		goal := float64(kk) * target
		lo := b[kk-1] + 1
		limit := n - 1 - (numBins - kk)
		if j < lo {
			j = lo
		}
		for j < limit && sf[j] < goal {
			j++
		}
		if sf[j] >= goal && j > lo && goal-sf[j-1] < sf[j]-goal {
			j--
		}
		b[kk] = j
	}
	b[numBins] = n - 1
	return b
}

func rebinEqualEnergy(fine FrequencyGrid, sHz []float64, numFreq int) (FrequencyGrid, []float64, error) {
	n := fine.Len()
	if numFreq < 1 || numFreq+2 > n {
		return FrequencyGrid{}, nil, fmt.Errorf("%w: equal-energy bin count %d for %d samples", ErrInvalidParams, numFreq, n)
	}

	f := make([]float64, n)
	floats.ScaleTo(f, 1/(2*math.Pi), fine.W)
	sf := cumulativeEnergy(f, sHz)
	if total := integrate.Trapezoidal(f, sHz); total <= 0 {
		return FrequencyGrid{}, nil, fmt.Errorf("%w: spectrum carries no energy in [%g, %g] rad/s", ErrInvalidParams, fine.W[0], fine.W[n-1])
	}

	b := equalEnergyBoundaries(sf, numFreq)
	w := make([]float64, numFreq)
	dw := make([]float64, numFreq)
	s := make([]float64, numFreq)
	for i := 0; i < numFreq; i++ {
		idx := b[i+1]
		w[i] = fine.W[idx]
		s[i] = sHz[idx] / (2 * math.Pi)
		if i == 0 {
			dw[i] = w[i] - fine.W[0]
		} else {
			dw[i] = w[i] - w[i-1]
		}
	}
	return FrequencyGrid{W: w, DW: dw}, s, nil
}
