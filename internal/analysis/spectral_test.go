package analysis

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/seastate/internal/wave"
)

func TestPeriodogramTone(t *testing.T) {
	const (
		n   = 1024
		dt  = 0.5
		bin = 40
		amp = 1.5
	)
	dw := 2 * math.Pi / (n * dt)
	w0 := bin * dw

	eta := make([]float64, n)
	for i := range eta {
		eta[i] = amp*math.Cos(w0*float64(i)*dt) + 0.3
	}

	w, s := Periodogram(eta, dt)
	if len(w) != n/2+1 {
		t.Fatalf("expected %d bins, got %d", n/2+1, len(w))
	}
	if peak := floats.MaxIdx(s); peak != bin {
		t.Errorf("peak at bin %d, want %d", peak, bin)
	}
	if math.Abs(w[bin]-w0) > 1e-12 {
		t.Errorf("bin frequency %g, want %g", w[bin], w0)
	}
	if s[0] > 1e-20 {
		t.Errorf("mean not removed, DC density %g", s[0])
	}

	m0 := SpectralMoment(w, s, 0)
	if math.Abs(m0-amp*amp/2) > 1e-9 {
		t.Errorf("m0 = %g, want %g", m0, amp*amp/2)
	}
}

func TestPeriodogramShort(t *testing.T) {
	if w, s := Periodogram([]float64{1}, 0.1); w != nil || s != nil {
		t.Error("expected nil for a single sample")
	}
	if w, _ := Periodogram([]float64{1, 2, 3}, 0); w != nil {
		t.Error("expected nil for zero dt")
	}
}

func TestBandAverage(t *testing.T) {
	w := []float64{0, 1, 2, 3, 4, 5, 6}
	s := []float64{1, 3, 5, 7, 9, 11, 13}

	wa, sa := BandAverage(w, s, 3)
	if len(wa) != 2 {
		t.Fatalf("expected 2 bands, got %d", len(wa))
	}
	if wa[1] != 4 || sa[0] != 3 || sa[1] != 9 {
		t.Errorf("unexpected bands %v %v", wa, sa)
	}

	wa, _ = BandAverage(w, s, 1)
	wa[0] = 99
	if w[0] != 0 {
		t.Error("single-bin average must copy")
	}
}

func pmDensity(T, H float64) (w, s []float64) {
	w = make([]float64, 5000)
	floats.Span(w, 0.05, 10)
	s = make([]float64, len(w))
	for i, wi := range w {
		s[i] = wave.PiersonMoskowitzDensity(wi/(2*math.Pi), T, H) / (2 * math.Pi)
	}
	return w, s
}

func TestStatsPiersonMoskowitz(t *testing.T) {
	const T, H = 8.0, 2.5
	w, s := pmDensity(T, H)

	st := Stats(w, s)
	if math.Abs(st.Hm0-H)/H > 0.01 {
		t.Errorf("Hm0 = %g, want %g", st.Hm0, H)
	}
	if math.Abs(st.PeakPeriod-T)/T > 0.01 {
		t.Errorf("Tp = %g, want %g", st.PeakPeriod, T)
	}
	if math.Abs(st.EnergyPeriod-0.857*T)/T > 0.01 {
		t.Errorf("Te = %g, want %g", st.EnergyPeriod, 0.857*T)
	}
	if st.MeanPeriod >= st.EnergyPeriod {
		t.Errorf("T01 %g should be below Te %g", st.MeanPeriod, st.EnergyPeriod)
	}
}

func TestStatsEmpty(t *testing.T) {
	if st := Stats(nil, nil); st != (SpectralStats{}) {
		t.Errorf("expected zero stats, got %+v", st)
	}
	if st := Stats([]float64{1, 2}, []float64{0, 0}); st.Hm0 != 0 {
		t.Errorf("expected zero Hm0, got %g", st.Hm0)
	}
}

func TestSpectralMomentNegativeOrder(t *testing.T) {
	w := []float64{0, 1, 2}
	s := []float64{5, 1, 1}
	// The zero-frequency sample is skipped: trapezoid of {0, 1, 0.5}.
	if got := SpectralMoment(w, s, -1); math.Abs(got-1.25) > 1e-12 {
		t.Errorf("m-1 = %g, want 1.25", got)
	}
}

func TestSynthesizedRecordReproducesSpectrum(t *testing.T) {
	p := wave.DefaultParams()
	p.EndTime = 3600
	p.Dt = 0.5
	st, err := wave.Setup(wave.Config{
		Type: wave.Irregular, Spectrum: wave.PiersonMoskowitz,
		Period: 8, Height: 2.5, PhaseSeed: 21,
	}, p)
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	hs := SignificantHeight(st.Origin.Eta)
	if math.Abs(hs-2.5)/2.5 > 0.1 {
		t.Errorf("Hs = %g, want 2.5", hs)
	}

	w, s := Periodogram(st.Origin.Eta, p.Dt)
	stats := Stats(BandAverage(w, s, 32))
	if math.Abs(stats.Hm0-hs)/hs > 0.05 {
		t.Errorf("Hm0 %g disagrees with 4 std %g", stats.Hm0, hs)
	}
	if math.Abs(stats.PeakPeriod-8)/8 > 0.2 {
		t.Errorf("Tp = %g, want about 8", stats.PeakPeriod)
	}
}
