// Package wave synthesizes ocean-surface wave kinematics from a small set of
// physical parameters.
//
// The package is organized as an explicit pipeline. Each stage consumes
// immutable inputs and returns a new value:
//
//   - [Discretize]: frequency grid from the BEM range and [Config]
//   - [WaveNumbers]: dispersion relation, one wave number per frequency
//   - [ComputeSpectrum]: PM / JONSWAP / imported spectral density and wave power
//   - [GeneratePhases]: one phase per (frequency, direction) pair
//   - [Synthesize]: elevation time histories at the origin and three gauges
//   - [State.EvaluateField]: elevation over an arbitrary (x, y) grid
//
// [Setup] runs the whole chain and returns a read-only [State].
//
// # Example
//
//	cfg := wave.Config{Type: wave.Irregular, Period: 8, Height: 2.5,
//	    Spectrum: wave.JONSWAP, Discretization: wave.EqualEnergy, PhaseSeed: 1}
//	st, err := wave.Setup(cfg, wave.DefaultParams())
//	z := st.EvaluateField(120, xs, ys)
//
// # Reproducibility
//
// Phases are drawn from a [math/rand.Rand] constructed per run. A non-zero
// PhaseSeed yields identical phase matrices across runs on the same Go
// release; seed 0 draws a seed from crypto/rand.
package wave
