package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/seastate/internal/wave"
)

func regularState(t *testing.T) *wave.State {
	t.Helper()
	p := wave.DefaultParams()
	p.EndTime = 60
	p.RampTime = 10
	st, err := wave.Setup(wave.Config{Type: wave.Regular, Period: 8, Height: 2, Directions: []float64{30}}, p)
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	return st
}

func TestCanvasProfile(t *testing.T) {
	c := NewCanvas(10, 4)
	c.DrawProfile([]float64{1, 0, -1}, 1)

	// Top-left and bottom-right sub-pixels must be lit.
	if c.Grid[0][0]&rune(pixelMap[0][0]) == 0 {
		t.Error("expected +amp at the top row")
	}
	if c.Grid[3][9]&rune(pixelMap[3][1]) == 0 {
		t.Error("expected -amp at the bottom row")
	}

	c.Clear()
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatal("canvas not cleared")
			}
		}
	}

	c.DrawProfile([]float64{5, -5}, 1)
	if lines := strings.Count(c.String(), "\n"); lines != 4 {
		t.Errorf("expected 4 lines, got %d", lines)
	}
}

func TestDownsample(t *testing.T) {
	in := []float64{0, 1, -3, 2, 0, 0.5}
	out := Downsample(in, 3)
	want := []float64{1, -3, 0.5}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("got %v, want %v", out, want)
		}
	}

	short := Downsample(in, 10)
	short[0] = 9
	if in[0] != 0 {
		t.Error("downsample must copy short input")
	}
}

func TestPlots(t *testing.T) {
	st := regularState(t)

	if out := PlotSeries(st.Origin, 40, 6, "origin"); !strings.Contains(out, "origin") {
		t.Errorf("caption missing:\n%s", out)
	}
	if out := PlotGauges(st.Origin, st.Gauges, 40, 6); out == "No samples" {
		t.Error("expected gauge plot")
	}
	if out := PlotSeries(wave.ElevationSeries{}, 40, 6, ""); out != "No samples" {
		t.Errorf("expected empty message, got %q", out)
	}

	w := []float64{0.5, 1, 1.5, 2}
	s := []float64{0, 2, 1, 0}
	if out := PlotSpectrum(w, s, 30, 5, "S(w)"); !strings.Contains(out, "S(w)") {
		t.Errorf("caption missing:\n%s", out)
	}
	if out := PlotSpectrum(w[:1], s[:1], 30, 5, ""); out != "No spectrum" {
		t.Errorf("expected empty message, got %q", out)
	}
}

func TestSummary(t *testing.T) {
	st := regularState(t)
	out := Summary(st, Metric{Label: "hs", Value: "1.41 m"})

	for _, want := range []string{"regular", "8.00 s", "infinite", "kW/m", "1.41 m"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestFormatPower(t *testing.T) {
	cases := map[float64]string{
		12:    "12.0 W/m",
		4500:  "4.50 kW/m",
		2.5e6: "2.50 MW/m",
	}
	for in, want := range cases {
		if got := formatPower(in); got != want {
			t.Errorf("formatPower(%g) = %q, want %q", in, got, want)
		}
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("storm").Name != "storm" {
		t.Error("expected storm theme")
	}
	if GetTheme("nope").Name != "ocean" {
		t.Error("expected ocean fallback")
	}
	names := ThemeNames()
	if len(names) != len(Themes) || names[0] != "ocean" {
		t.Errorf("unexpected theme names %v", names)
	}
	for _, name := range names {
		if th, ok := LookupTheme(name); !ok || th.Name != name {
			t.Errorf("lookup %q failed", name)
		}
	}
	if _, ok := LookupTheme("nope"); ok {
		t.Error("expected lookup of unknown theme to fail")
	}
	m := NewModel(regularState(t), 200).WithTheme(ThemeStorm)
	if m.theme.Name != "storm" {
		t.Errorf("expected storm theme on model, got %s", m.theme.Name)
	}

	th := ThemeOcean
	for range Themes {
		th = NextTheme(th)
	}
	if th.Name != ThemeOcean.Name {
		t.Errorf("cycling all themes should return to ocean, got %s", th.Name)
	}
}

func TestModelUpdate(t *testing.T) {
	st := regularState(t)
	m := NewModel(st, 200)

	if len(m.profile) != width*2+1 {
		t.Fatalf("expected %d profile points, got %d", width*2+1, len(m.profile))
	}
	// The ramp holds the surface flat at t = 0.
	for _, v := range m.profile {
		if v != 0 {
			t.Fatalf("expected flat surface at t=0, got %g", v)
		}
	}

	next, cmd := m.Update(TickMsg{})
	if cmd == nil {
		t.Error("tick must schedule the next frame")
	}
	m = next.(Model)
	if m.Time() <= 0 {
		t.Error("tick should advance time while running")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	m = next.(Model)
	before := m.Time()
	next, _ = m.Update(TickMsg{})
	m = next.(Model)
	if m.Time() != before {
		t.Error("paused model must not advance")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	m = next.(Model)
	if m.speed != 2 {
		t.Errorf("expected speed 2, got %g", m.speed)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = next.(Model)
	if m.Time() != 0 || len(m.history) != 1 {
		t.Errorf("reset should restart at t=0, got t=%g history=%d", m.Time(), len(m.history))
	}

	if !strings.Contains(m.View(), "REGULAR") {
		t.Error("view missing wave type")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestModelMatchesOrigin(t *testing.T) {
	st := regularState(t)
	m := NewModel(st, 100)
	m.advance(30)

	want := st.Origin.Eta[300]
	got := m.history[len(m.history)-1]
	if d := got - want; d > 1e-6 || d < -1e-6 {
		t.Errorf("eta(0) = %g, want %g", got, want)
	}
}

func TestHeatmap(t *testing.T) {
	field := [][]float64{
		{-1, 0, 1},
		{2, -2, 0},
	}
	out := Heatmap(field, 1)
	want := "@ +\n +@\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
	if Heatmap(nil, 1) != "" {
		t.Error("expected empty output")
	}
}

func TestSeriesSVG(t *testing.T) {
	st := regularState(t)

	var b strings.Builder
	if err := SeriesSVG(&b, []wave.ElevationSeries{st.Origin, {}}, 600, 200); err != nil {
		t.Fatalf("svg failed: %v", err)
	}
	out := b.String()
	if !strings.HasPrefix(out, "<?xml") || !strings.HasSuffix(out, "</svg>\n") {
		t.Error("malformed svg document")
	}
	if n := strings.Count(out, "<path"); n != 1 {
		t.Errorf("expected 1 path for the non-empty series, got %d", n)
	}
	if n := strings.Count(out, " L"); n != st.Origin.Len()-1 {
		t.Errorf("expected %d segments, got %d", st.Origin.Len()-1, n)
	}

	if err := SeriesSVG(&b, nil, 600, 200); err == nil {
		t.Error("expected error without series")
	}
	if err := SeriesSVG(&b, []wave.ElevationSeries{st.Origin}, 0, 200); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestProfileSVG(t *testing.T) {
	st := regularState(t)
	c, err := ProfileCanvas(st, 30, 200, 40, 8)
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	svg := CanvasSVG(c, 2)
	if !strings.Contains(svg, `width="160" height="64"`) {
		t.Error("unexpected svg size")
	}
	if strings.Count(svg, "<circle") < 80 {
		t.Error("expected the profile to light at least one dot per column")
	}
	if CanvasSVG(nil, 2) != "" {
		t.Error("nil canvas should render empty")
	}
}
