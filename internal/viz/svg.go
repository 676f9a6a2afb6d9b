package viz

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/seastate/internal/wave"
)

// seriesColors matches the terminal gauge palette.
var seriesColors = []string{"#4fc3f7", "#ffb74d", "#81c784", "#e57373"}

// SeriesSVG draws elevation series as polylines on a shared time and
// elevation scale. Series are drawn in order; empty ones are skipped.
func SeriesSVG(w io.Writer, series []wave.ElevationSeries, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("svg size %dx%d", width, height)
	}

	var t0, t1, lo, hi float64
	first := true
	for _, s := range series {
		if s.Len() < 2 {
			continue
		}
		slo, shi := s.Range()
		if first {
			t0, t1, lo, hi = s.Time[0], s.Time[s.Len()-1], slo, shi
			first = false
			continue
		}
		t0, t1 = math.Min(t0, s.Time[0]), math.Max(t1, s.Time[s.Len()-1])
		lo, hi = math.Min(lo, slo), math.Max(hi, shi)
	}
	if first {
		return fmt.Errorf("no series with at least two samples")
	}

	// symmetric about still water with 10% headroom
	amp := math.Max(math.Abs(lo), math.Abs(hi)) * 1.1
	if amp == 0 {
		amp = 1
	}
	span := t1 - t0
	if span == 0 {
		span = 1
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#333" stroke-dasharray="4 4"/>
`, width, height, width, height, float64(height)/2, width, float64(height)/2)

	idx := 0
	for _, s := range series {
		if s.Len() < 2 {
			continue
		}
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.2" d="M`, seriesColors[idx%len(seriesColors)])
		for i := range s.Time {
			x := (s.Time[i] - t0) / span * float64(width)
			y := (1 - (s.Eta[i]/amp+1)/2) * float64(height)
			if i == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
		idx++
	}
	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// CanvasSVG converts a braille canvas to dots, scale pixels per sub-pixel.
func CanvasSVG(canvas *Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}
	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#4fc3f7">
`, width, height, width, height)

	r := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			pattern := int(canvas.Grid[row][col] - 0x2800)
			if pattern <= 0 {
				continue
			}
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					cx := (float64(col*2+dx) + 0.5) * scale
					cy := (float64(row*4+dy) + 0.5) * scale
					fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, r)
				}
			}
		}
	}
	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// ProfileCanvas draws the surface at time t along a transect of the given
// length through the origin, heading along the first wave direction.
func ProfileCanvas(st *wave.State, t, length float64, w, h int) (*Canvas, error) {
	heading := 0.0
	if dirs := st.Config.Directions; len(dirs) > 0 {
		heading = dirs[0]
	}
	c := NewCanvas(w, h)
	xs, ys := transect(length, heading, w*2+1)
	field, err := st.EvaluateField(t, xs, ys)
	if err != nil {
		return nil, err
	}
	amp := surfaceScale(st)
	c.DrawLevel(0, amp)
	c.DrawProfile(field[0], amp)
	return c, nil
}
