package wave

import "math"

// dispersionIterations is the fixed number of fixed-point iterations.
const dispersionIterations = 100

// WaveNumber solves w^2 = g k tanh(k d) for k. In deep water k = w^2/g;
// otherwise k is iterated from that seed as k = w^2 / (g tanh(k d)).
func WaveNumber(w, g, depth float64, deep bool) float64 {
	k := w * w / g
	if deep || k == 0 {
		return k
	}
	for i := 0; i < dispersionIterations; i++ {
		k = w * w / g / math.Tanh(k*depth)
	}
	return k
}

// WaveNumbers returns one wave number per frequency.
func WaveNumbers(w []float64, g, depth float64, deep bool) []float64 {
	k := make([]float64, len(w))
	ParallelFor(len(w), 4096, func(start, end int) {
		for i := start; i < end; i++ {
			k[i] = WaveNumber(w[i], g, depth, deep)
		}
	})
	return k
}
