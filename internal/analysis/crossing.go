package analysis

import (
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Wave is one zero up-crossing wave.
type Wave struct {
	Start  float64 // up-crossing time (s)
	Height float64 // crest to trough (m)
	Period float64 // s
}

// ZeroUpCrossings splits a record at up-crossings of its mean level.
// Crossing times are linearly interpolated between samples.
func ZeroUpCrossings(t, eta []float64) []Wave {
	if len(t) != len(eta) || len(eta) < 3 {
		return nil
	}

	mean := stat.Mean(eta, nil)

	var (
		waves   []Wave
		start   = math.NaN()
		hi, lo  float64
		prevVal = eta[0] - mean
	)

	for i := 1; i < len(eta); i++ {
		currVal := eta[i] - mean

		if prevVal < 0 && currVal >= 0 {
			frac := -prevVal / (currVal - prevVal)
			tc := t[i-1] + frac*(t[i]-t[i-1])
			if !math.IsNaN(start) {
				waves = append(waves, Wave{Start: start, Height: hi - lo, Period: tc - start})
			}
			start = tc
			hi, lo = currVal, currVal
		}

		if currVal > hi {
			hi = currVal
		}
		if currVal < lo {
			lo = currVal
		}
		prevVal = currVal
	}

	return waves
}

// WaveStats summarizes a wave-by-wave analysis.
type WaveStats struct {
	Count int
	HMax  float64
	H13   float64 // mean of the highest third
	HMean float64
	Tz    float64 // mean zero up-crossing period
}

func Summarize(waves []Wave) WaveStats {
	out := WaveStats{Count: len(waves)}
	if len(waves) == 0 {
		return out
	}

	heights := make([]float64, len(waves))
	for i, w := range waves {
		heights[i] = w.Height
		out.HMean += w.Height
		out.Tz += w.Period
	}
	out.HMean /= float64(len(waves))
	out.Tz /= float64(len(waves))

	sort.Sort(sort.Reverse(sort.Float64Slice(heights)))
	out.HMax = heights[0]
	third := len(heights) / 3
	if third == 0 {
		third = 1
	}
	for _, h := range heights[:third] {
		out.H13 += h
	}
	out.H13 /= float64(third)
	return out
}

// ScatterASCII draws wave height against period on a width x height canvas.
func ScatterASCII(waves []Wave, width, height int) string {
	if len(waves) == 0 || width < 2 || height < 2 {
		return "No waves detected"
	}

	maxT, maxH := 0.0, 0.0
	for _, w := range waves {
		maxT = math.Max(maxT, w.Period)
		maxH = math.Max(maxH, w.Height)
	}
	if maxT == 0 {
		maxT = 1
	}
	if maxH == 0 {
		maxH = 1
	}
	maxT *= 1.1
	maxH *= 1.1

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
		canvas[i][0] = '│'
	}
	for col := 1; col < width; col++ {
		canvas[height-1][col] = '─'
	}
	canvas[height-1][0] = '└'

	for _, w := range waves {
		col := 1 + int(w.Period/maxT*float64(width-2))
		row := height - 2 - int(w.Height/maxH*float64(height-2))
		if row >= 0 && row < height-1 && col > 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
