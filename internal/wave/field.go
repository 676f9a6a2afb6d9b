package wave

import "fmt"

// EvaluateField returns the elevation at time t for every point of the
// coordinate grids x and y, which must have the same shape. The ramp is
// applied continuously in t. Imported elevation records carry no spatial
// information and evaluate to zero.
//
// The ramp length is rounded to whole time steps as in Synthesize, so the
// field at a sample time equals the synthesized series there.
func (st *State) EvaluateField(t float64, x, y [][]float64) ([][]float64, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: grid rows %d != %d", ErrInvalidParams, len(x), len(y))
	}
	for i := range x {
		if len(x[i]) != len(y[i]) {
			return nil, fmt.Errorf("%w: grid row %d has %d x and %d y values", ErrInvalidParams, i, len(x[i]), len(y[i]))
		}
	}

	ramp := RampFactor(t, float64(RampSteps(st.Params.RampTime, st.Params.Dt))*st.Params.Dt)
	z := make([][]float64, len(x))
	ParallelFor(len(x), 1, func(start, end int) {
		for i := start; i < end; i++ {
			row := make([]float64, len(x[i]))
			for j := range row {
				row[j] = st.field.At(x[i][j], y[i][j], t) * ramp
			}
			z[i] = row
		}
	})
	return z, nil
}

// Meshgrid returns coordinate grids for the given axes, rows along y.
func Meshgrid(xs, ys []float64) (x, y [][]float64) {
	x = make([][]float64, len(ys))
	y = make([][]float64, len(ys))
	for i, yv := range ys {
		x[i] = append([]float64(nil), xs...)
		y[i] = make([]float64, len(xs))
		for j := range xs {
			y[i][j] = yv
		}
	}
	return x, y
}
