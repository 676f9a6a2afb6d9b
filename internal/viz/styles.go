package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/seastate/internal/wave"
)

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#335577")).
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00a8cc"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#557799"))

	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Width(14)

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#557799")).
		Italic(true)

	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// Metric is one labelled row of a summary panel.
type Metric struct {
	Label string
	Value string
}

// Summary renders the derived state of a run as a titled panel. Extra rows
// are appended after the built-in ones.
func Summary(st *wave.State, extra ...Metric) string {
	cfg, p := st.Config, st.Params
	rows := []Metric{{"type", cfg.Type.String()}}

	if cfg.Type.Spectral() {
		rows = append(rows,
			Metric{"spectrum", cfg.Spectrum.String()},
			Metric{"grid", fmt.Sprintf("%s, %d freqs", cfg.Discretization, st.Grid.Len())},
		)
		if cfg.Spectrum == wave.JONSWAP {
			rows = append(rows, Metric{"gamma", fmt.Sprintf("%.3f", st.Gamma)})
		}
		if n := len(cfg.Directions); n > 1 {
			rows = append(rows, Metric{"directions", fmt.Sprintf("%d", n)})
		}
	}
	if cfg.Period > 0 {
		rows = append(rows, Metric{"period", fmt.Sprintf("%.2f s", cfg.Period)})
	}
	if cfg.Height > 0 {
		rows = append(rows, Metric{"height", fmt.Sprintf("%.2f m", cfg.Height)})
	}

	depth := "infinite"
	if !p.DeepWater() {
		depth = fmt.Sprintf("%.1f m", p.WaterDepth)
	}
	rows = append(rows, Metric{"depth", depth})
	if st.Power > 0 {
		rows = append(rows, Metric{"power", formatPower(st.Power)})
	}
	if st.Origin.Len() > 0 {
		lo, hi := st.Origin.Range()
		rows = append(rows,
			Metric{"samples", fmt.Sprintf("%d @ %gs", st.Origin.Len(), p.Dt)},
			Metric{"eta range", fmt.Sprintf("%.3f .. %.3f m", lo, hi)},
		)
	}
	rows = append(rows, extra...)

	var b strings.Builder
	b.WriteString(Title.Render("SEA STATE") + "\n\n")
	for _, r := range rows {
		b.WriteString(MetricLabel.Render(r.Label) + MetricValue.Render(r.Value) + "\n")
	}
	if st.Origin.Len() > 1 {
		b.WriteString("\n" + SparklineChart(st.Origin.Eta, 40))
	}
	return Panel.Render(b.String())
}

func formatPower(w float64) string {
	switch {
	case w >= 1e6:
		return fmt.Sprintf("%.2f MW/m", w/1e6)
	case w >= 1e3:
		return fmt.Sprintf("%.2f kW/m", w/1e3)
	default:
		return fmt.Sprintf("%.1f W/m", w)
	}
}

// ProgressBar renders a bar filled to percent of width.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	if percent > 0.8 {
		return SparkHigh.Render(bar)
	} else if percent > 0.4 {
		return SparkMid.Render(bar)
	}
	return SparkLow.Render(bar)
}

// SparklineChart renders values as a one-line sparkline, taking the extreme
// of each bucket so crests survive downsampling.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	buckets := Downsample(values, width)
	var result strings.Builder
	for _, v := range buckets {
		norm := (v - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = min(max(idx, 0), len(chars)-1)

		c := chars[idx]
		if norm > 0.7 {
			result.WriteString(SparkHigh.Render(string(c)))
		} else if norm > 0.3 {
			result.WriteString(SparkMid.Render(string(c)))
		} else {
			result.WriteString(SparkLow.Render(string(c)))
		}
	}

	return result.String()
}

// Separator renders a muted horizontal rule.
func Separator(width int) string {
	if width < 8 {
		return Subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return Subtle.Render(left + " ≈ " + right)
}
