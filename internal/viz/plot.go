package viz

import (
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/seastate/internal/wave"
)

// Downsample reduces values to at most n points, keeping the sample with the
// largest magnitude in each bucket.
func Downsample(values []float64, n int) []float64 {
	if n <= 0 || len(values) <= n {
		return append([]float64(nil), values...)
	}
	out := make([]float64, n)
	for i := range out {
		lo := i * len(values) / n
		hi := (i + 1) * len(values) / n
		best := values[lo]
		for _, v := range values[lo:hi] {
			if math.Abs(v) > math.Abs(best) {
				best = v
			}
		}
		out[i] = best
	}
	return out
}

// PlotSeries draws an elevation series.
func PlotSeries(s wave.ElevationSeries, width, height int, caption string) string {
	if s.Len() == 0 {
		return "No samples"
	}
	return asciigraph.Plot(Downsample(s.Eta, width),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(2),
		asciigraph.Caption(caption))
}

// PlotGauges overlays the origin and gauge series.
func PlotGauges(origin wave.ElevationSeries, gauges [3]wave.ElevationSeries, width, height int) string {
	if origin.Len() == 0 {
		return "No samples"
	}
	series := [][]float64{Downsample(origin.Eta, width)}
	for _, g := range gauges {
		if g.Len() > 0 {
			series = append(series, Downsample(g.Eta, width))
		}
	}
	return asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Green, asciigraph.Yellow, asciigraph.Red),
		asciigraph.Caption("eta (m): origin, gauge 1-3"))
}

// PlotSpectrum draws a spectral density against its frequency samples,
// resampled onto width uniformly spaced frequencies.
func PlotSpectrum(w, s []float64, width, height int, caption string) string {
	if len(w) < 2 || len(w) != len(s) {
		return "No spectrum"
	}
	if width < 2 {
		width = 2
	}
	lo, hi := w[0], w[len(w)-1]
	out := make([]float64, width)
	j := 0
	for i := range out {
		x := lo + (hi-lo)*float64(i)/float64(width-1)
		for j < len(w)-2 && w[j+1] < x {
			j++
		}
		span := w[j+1] - w[j]
		frac := 0.0
		if span > 0 {
			frac = math.Min(math.Max((x-w[j])/span, 0), 1)
		}
		out[i] = s[j] + frac*(s[j+1]-s[j])
	}
	return asciigraph.Plot(out,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(3),
		asciigraph.Caption(caption))
}

var heatLevels = []rune(" .:-=+*#%@")

// Heatmap renders a plan view of a field, one character per cell, with the
// first row of the grid at the bottom. Values are scaled to [-amp, amp].
func Heatmap(field [][]float64, amp float64) string {
	if len(field) == 0 || amp <= 0 {
		return ""
	}
	top := len(heatLevels) - 1

	var b strings.Builder
	for r := len(field) - 1; r >= 0; r-- {
		for _, v := range field[r] {
			idx := int(math.Round((v/amp + 1) / 2 * float64(top)))
			b.WriteRune(heatLevels[min(max(idx, 0), top)])
		}
		b.WriteRune('\n')
	}
	return b.String()
}
