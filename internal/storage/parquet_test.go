package storage

import (
	"path/filepath"
	"testing"
)

func TestParquetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.parquet")
	st := irregularState(t)

	if err := ExportParquet(path, st); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	rows, err := ReadParquet(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(rows) != st.Origin.Len() {
		t.Fatalf("expected %d rows, got %d", st.Origin.Len(), len(rows))
	}

	for _, i := range []int{0, 1, len(rows) / 2, len(rows) - 1} {
		r := rows[i]
		if r.Time != st.Origin.Time[i] || r.Origin != st.Origin.Eta[i] {
			t.Errorf("row %d: got (%g, %g), want (%g, %g)", i, r.Time, r.Origin, st.Origin.Time[i], st.Origin.Eta[i])
		}
		if r.Gauge3 != st.Gauges[2].Eta[i] {
			t.Errorf("row %d gauge3: got %g, want %g", i, r.Gauge3, st.Gauges[2].Eta[i])
		}
	}
}

func TestElevationRowsShortGauge(t *testing.T) {
	st := regularState(t)
	gauges := st.Gauges
	gauges[1].Eta = gauges[1].Eta[:3]

	rows := ElevationRows(st.Origin, gauges)
	if rows[3].Gauge2 != 0 {
		t.Errorf("expected zero past the gauge series, got %g", rows[3].Gauge2)
	}
	if rows[2].Gauge2 != gauges[1].Eta[2] {
		t.Errorf("expected gauge value, got %g", rows[2].Gauge2)
	}
}
