package analysis

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// Periodogram returns the one-sided spectral density of a record sampled
// every dt seconds. Frequencies are in rad/s from 0 to the Nyquist frequency
// and the density integrates to the record variance.
func Periodogram(eta []float64, dt float64) (w, s []float64) {
	n := len(eta)
	if n < 2 || dt <= 0 {
		return nil, nil
	}

	mean := stat.Mean(eta, nil)
	x := make([]float64, n)
	for i, v := range eta {
		x[i] = v - mean
	}

	spec := fft.FFTReal(x)
	dw := 2 * math.Pi / (float64(n) * dt)
	half := n/2 + 1
	w = make([]float64, half)
	s = make([]float64, half)
	norm := float64(n) * float64(n) * dw
	for k := 0; k < half; k++ {
		c := spec[k]
		p := (real(c)*real(c) + imag(c)*imag(c)) / norm
		if k != 0 && !(n%2 == 0 && k == n/2) {
			p *= 2
		}
		w[k] = float64(k) * dw
		s[k] = p
	}
	return w, s
}

// BandAverage averages groups of bins bins wide. A trailing partial group is
// dropped.
func BandAverage(w, s []float64, bins int) (wa, sa []float64) {
	if bins <= 1 {
		return append([]float64(nil), w...), append([]float64(nil), s...)
	}
	groups := len(w) / bins
	wa = make([]float64, groups)
	sa = make([]float64, groups)
	for g := 0; g < groups; g++ {
		lo, hi := g*bins, (g+1)*bins
		wa[g] = stat.Mean(w[lo:hi], nil)
		sa[g] = stat.Mean(s[lo:hi], nil)
	}
	return wa, sa
}

// SpectralMoment integrates w^n S(w) with the trapezoid rule. For negative
// orders the zero frequency contributes nothing.
func SpectralMoment(w, s []float64, n int) float64 {
	if len(w) < 2 || len(w) != len(s) {
		return 0
	}
	f := make([]float64, len(w))
	for i := range w {
		if w[i] == 0 && n < 0 {
			continue
		}
		f[i] = math.Pow(w[i], float64(n)) * s[i]
	}
	return integrate.Trapezoidal(w, f)
}

// SignificantHeight is four times the standard deviation of the record.
func SignificantHeight(eta []float64) float64 {
	if len(eta) < 2 {
		return 0
	}
	return 4 * stat.StdDev(eta, nil)
}

// SpectralStats are the usual parameters derived from spectral moments.
type SpectralStats struct {
	Hm0          float64 // 4 sqrt(m0)
	PeakFreq     float64 // rad/s
	PeakPeriod   float64 // s
	EnergyPeriod float64 // 2 pi m-1/m0
	MeanPeriod   float64 // 2 pi m0/m1
}

// Stats derives the spectral parameters of a one-sided density.
func Stats(w, s []float64) SpectralStats {
	var out SpectralStats
	if len(w) < 2 || len(w) != len(s) {
		return out
	}
	m0 := SpectralMoment(w, s, 0)
	if m0 <= 0 {
		return out
	}
	out.Hm0 = 4 * math.Sqrt(m0)
	out.PeakFreq = w[floats.MaxIdx(s)]
	if out.PeakFreq > 0 {
		out.PeakPeriod = 2 * math.Pi / out.PeakFreq
	}
	out.EnergyPeriod = 2 * math.Pi * SpectralMoment(w, s, -1) / m0
	if m1 := SpectralMoment(w, s, 1); m1 > 0 {
		out.MeanPeriod = 2 * math.Pi * m0 / m1
	}
	return out
}
