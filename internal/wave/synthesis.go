package wave

import (
	"math"

	"gonum.org/v1/gonum/interp"
)

// component is one (frequency, direction) term amp*cos(w t - k Δ + phase).
type component struct {
	w, k, amp, phase float64
	cosDir, sinDir   float64
}

// Wavefield is the set of linear components a surface is built from.
type Wavefield struct {
	comps []component
}

// regularField is a single cosine along the first incident direction.
func regularField(w, k, amp, dirDeg float64) Wavefield {
	rad := dirDeg * math.Pi / 180
	return Wavefield{comps: []component{{
		w: w, k: k, amp: amp,
		cosDir: math.Cos(rad), sinDir: math.Sin(rad),
	}}}
}

// spectralField expands every (frequency, direction) pair with amplitude
// sqrt(A dw spread).
func spectralField(cfg Config, grid FrequencyGrid, k []float64, sp SpectrumState, phase PhaseMatrix) Wavefield {
	comps := make([]component, 0, grid.Len()*len(cfg.Directions))
	for j, dir := range cfg.Directions {
		rad := dir * math.Pi / 180
		c, s := math.Cos(rad), math.Sin(rad)
		for i, w := range grid.W {
			comps = append(comps, component{
				w:      w,
				k:      k[i],
				amp:    math.Sqrt(sp.A[i] * grid.DW[i] * cfg.Spread[j]),
				phase:  phase.At(i, j),
				cosDir: c,
				sinDir: s,
			})
		}
	}
	return Wavefield{comps: comps}
}

// Len returns the number of components.
func (f Wavefield) Len() int { return len(f.comps) }

// offsets returns the per-component phase at point (x, y): phase - k Δ.
func (f Wavefield) offsets(x, y float64) []float64 {
	off := make([]float64, len(f.comps))
	for i, c := range f.comps {
		off[i] = c.phase - c.k*(x*c.cosDir+y*c.sinDir)
	}
	return off
}

// At returns the unramped elevation at (x, y) and time t.
func (f Wavefield) At(x, y, t float64) float64 {
	var eta float64
	for _, c := range f.comps {
		eta += c.amp * math.Cos(c.w*t-c.k*(x*c.cosDir+y*c.sinDir)+c.phase)
	}
	return eta
}

func (f Wavefield) atOffsets(off []float64, t float64) float64 {
	var eta float64
	for i, c := range f.comps {
		eta += c.amp * math.Cos(c.w*t+off[i])
	}
	return eta
}

// RampSteps returns round(rampTime/dt).
func RampSteps(rampTime, dt float64) int {
	return int(math.Round(rampTime / dt))
}

// RampWeight is the half-cosine start-up window at step i of steps. It rises
// from 0 at i=0 to 1 at i=steps and is 1 afterwards or when steps is 0.
func RampWeight(i, steps int) float64 {
	if steps <= 0 || i >= steps {
		return 1
	}
	return (1 + math.Cos(math.Pi+math.Pi*float64(i)/float64(steps))) / 2
}

// RampFactor is the continuous form of RampWeight at time t.
func RampFactor(t, rampTime float64) float64 {
	if rampTime <= 0 || t >= rampTime {
		return 1
	}
	if t <= 0 {
		return 0
	}
	return (1 + math.Cos(math.Pi+math.Pi*t/rampTime)) / 2
}

func timeAxis(p Params) []float64 {
	n := p.Steps() + 1
	t := make([]float64, n)
	for i := range t {
		t[i] = float64(i) * p.Dt
	}
	return t
}

// Synthesize samples the wavefield at the origin and at each gauge for
// Steps()+1 time steps, applying the start-up ramp.
func Synthesize(field Wavefield, gauges [3]Gauge, p Params) (origin ElevationSeries, out [3]ElevationSeries) {
	t := timeAxis(p)
	steps := RampSteps(p.RampTime, p.Dt)

	origin = sampleAt(field, 0, 0, t, steps)
	for g, gauge := range gauges {
		out[g] = sampleAt(field, gauge.X, gauge.Y, t, steps)
	}
	return origin, out
}

func sampleAt(field Wavefield, x, y float64, t []float64, rampSteps int) ElevationSeries {
	off := field.offsets(x, y)
	eta := make([]float64, len(t))
	ParallelFor(len(t), 256, func(start, end int) {
		for i := start; i < end; i++ {
			eta[i] = field.atOffsets(off, t[i]) * RampWeight(i, rampSteps)
		}
	})
	return ElevationSeries{Time: t, Eta: eta}
}

// SynthesizeImported interpolates an elevation record onto the run's time
// axis. Only the origin series carries elevation; gauge series hold the time
// axis and zeros because the record has no direction.
func SynthesizeImported(table *ElevationTable, p Params) (origin ElevationSeries, out [3]ElevationSeries, err error) {
	var pl interp.PiecewiseLinear
	if err := pl.Fit(table.Time, table.Eta); err != nil {
		return origin, out, err
	}

	t := timeAxis(p)
	steps := RampSteps(p.RampTime, p.Dt)
	eta := make([]float64, len(t))
	for i, ti := range t {
		eta[i] = pl.Predict(ti) * RampWeight(i, steps)
	}
	origin = ElevationSeries{Time: t, Eta: eta}
	for g := range out {
		out[g] = ElevationSeries{Time: t, Eta: make([]float64, len(t))}
	}
	return origin, out, nil
}
