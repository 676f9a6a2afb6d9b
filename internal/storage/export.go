package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/seastate/internal/wave"
)

// ExportData is the JSON form of a synthesized run.
type ExportData struct {
	WaveType  string             `json:"wave_type"`
	Spectrum  string             `json:"spectrum,omitempty"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	RampTime  float64            `json:"ramp_time"`
	Steps     int                `json:"steps"`
	Power     float64            `json:"power"`
	Frequency []float64          `json:"frequency,omitempty"`
	Density   []float64          `json:"density,omitempty"`
	Time      []float64          `json:"time"`
	Origin    []float64          `json:"origin"`
	Gauges    [3][]float64       `json:"gauges"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

func newExportData(st *wave.State, metrics map[string]float64) ExportData {
	data := ExportData{
		WaveType: st.Config.Type.String(),
		Seed:     st.Config.PhaseSeed,
		Dt:       st.Params.Dt,
		RampTime: st.Params.RampTime,
		Steps:    st.Origin.Len(),
		Power:    st.Power,
		Time:     st.Origin.Time,
		Origin:   st.Origin.Eta,
		Metrics:  metrics,
	}
	if st.Config.Type.Spectral() {
		data.Spectrum = st.Config.Spectrum.String()
		data.Frequency = st.Grid.W
		data.Density = st.Spectrum.S
	}
	for i, g := range st.Gauges {
		data.Gauges[i] = g.Eta
	}
	return data
}

// WriteJSON encodes the run to w.
func WriteJSON(w io.Writer, st *wave.State, metrics map[string]float64) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(st, metrics))
}

func ExportJSON(path string, st *wave.State, metrics map[string]float64) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteJSON(w, st, metrics)
	})
}

// ExportCSV writes the elevation series of a run to path.
func ExportCSV(path string, st *wave.State) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteElevationCSV(w, st.Origin, st.Gauges)
	})
}

// ReadJSON decodes a file written by ExportJSON.
func ReadJSON(path string) (*ExportData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var data ExportData
	if err := json.NewDecoder(f).Decode(&data); err != nil {
		return nil, err
	}
	return &data, nil
}
