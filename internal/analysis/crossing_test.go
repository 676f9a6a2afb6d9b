package analysis

import (
	"math"
	"strings"
	"testing"
)

func sine(amp, period, dt, duration float64) (t, eta []float64) {
	n := int(duration/dt) + 1
	t = make([]float64, n)
	eta = make([]float64, n)
	for i := range t {
		t[i] = float64(i) * dt
		eta[i] = amp * math.Sin(2*math.Pi*t[i]/period+0.3)
	}
	return t, eta
}

func TestZeroUpCrossingsSine(t *testing.T) {
	tt, eta := sine(1, 8, 0.1, 100)

	waves := ZeroUpCrossings(tt, eta)
	if len(waves) != 11 {
		t.Fatalf("expected 11 complete waves, got %d", len(waves))
	}
	for i, w := range waves {
		if math.Abs(w.Period-8) > 1e-3 {
			t.Errorf("wave %d: period %g, want 8", i, w.Period)
		}
		if math.Abs(w.Height-2) > 0.01 {
			t.Errorf("wave %d: height %g, want 2", i, w.Height)
		}
	}

	st := Summarize(waves)
	if st.Count != 11 || math.Abs(st.Tz-8) > 1e-3 {
		t.Errorf("unexpected summary %+v", st)
	}
	if st.HMax < st.H13 || st.H13 < st.HMean-1e-12 {
		t.Errorf("expected HMax >= H1/3 >= HMean, got %+v", st)
	}
}

func TestZeroUpCrossingsIgnoresOffset(t *testing.T) {
	tt, eta := sine(0.5, 5, 0.05, 50)
	for i := range eta {
		eta[i] += 3
	}
	waves := ZeroUpCrossings(tt, eta)
	if len(waves) < 8 {
		t.Fatalf("expected crossings about the mean, got %d waves", len(waves))
	}
}

func TestZeroUpCrossingsFlat(t *testing.T) {
	tt := []float64{0, 1, 2, 3}
	if waves := ZeroUpCrossings(tt, make([]float64, 4)); len(waves) != 0 {
		t.Errorf("expected no waves, got %d", len(waves))
	}
	if waves := ZeroUpCrossings(tt, []float64{1, 2}); waves != nil {
		t.Error("expected nil for mismatched lengths")
	}
}

func TestSummarizeHighestThird(t *testing.T) {
	waves := []Wave{{Height: 1}, {Height: 4}, {Height: 2}, {Height: 6}, {Height: 3}, {Height: 5}}
	st := Summarize(waves)
	if st.HMax != 6 {
		t.Errorf("HMax = %g, want 6", st.HMax)
	}
	if st.H13 != 5.5 {
		t.Errorf("H1/3 = %g, want 5.5", st.H13)
	}
	if st.HMean != 3.5 {
		t.Errorf("HMean = %g, want 3.5", st.HMean)
	}
	if Summarize(nil).Count != 0 {
		t.Error("expected empty summary")
	}
}

func TestScatterASCII(t *testing.T) {
	waves := []Wave{{Height: 1, Period: 5}, {Height: 2, Period: 8}}
	out := ScatterASCII(waves, 30, 10)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 lines, got %d", len(lines))
	}
	if strings.Count(out, "•") != 2 {
		t.Errorf("expected 2 points in\n%s", out)
	}
	if ScatterASCII(nil, 30, 10) != "No waves detected" {
		t.Error("expected empty message")
	}
}
