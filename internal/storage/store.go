package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/seastate/internal/wave"
)

const (
	metadataFile  = "metadata.json"
	elevationFile = "elevation.csv"
	spectrumFile  = "spectrum.csv"
)

var elevationHeader = []string{"time", "origin", "gauge1", "gauge2", "gauge3"}

// Store keeps synthesized runs as one directory per run.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes a stored run.
type RunMetadata struct {
	ID             string             `json:"id"`
	WaveType       string             `json:"wave_type"`
	Spectrum       string             `json:"spectrum,omitempty"`
	Discretization string             `json:"discretization,omitempty"`
	Timestamp      time.Time          `json:"timestamp"`
	Seed           int64              `json:"seed"`
	Period         float64            `json:"period"`
	Height         float64            `json:"height"`
	Gamma          float64            `json:"gamma,omitempty"`
	NumFreq        int                `json:"num_freq"`
	Dt             float64            `json:"dt"`
	EndTime        float64            `json:"end_time"`
	RampTime       float64            `json:"ramp_time"`
	WaterDepth     string             `json:"water_depth"`
	Gauges         [3]wave.Gauge      `json:"gauges"`
	Power          float64            `json:"power"`
	Metrics        map[string]float64 `json:"metrics,omitempty"`
}

func newMetadata(id string, st *wave.State, metrics map[string]float64) RunMetadata {
	cfg, p := st.Config, st.Params
	meta := RunMetadata{
		ID:         id,
		WaveType:   cfg.Type.String(),
		Timestamp:  time.Now(),
		Seed:       cfg.PhaseSeed,
		Period:     cfg.Period,
		Height:     cfg.Height,
		Gamma:      st.Gamma,
		NumFreq:    st.Grid.Len(),
		Dt:         p.Dt,
		EndTime:    p.Dt * float64(p.Steps()),
		RampTime:   p.RampTime,
		WaterDepth: "infinite",
		Gauges:     cfg.Gauges,
		Power:      st.Power,
		Metrics:    metrics,
	}
	if !p.DeepWater() {
		meta.WaterDepth = strconv.FormatFloat(p.WaterDepth, 'g', -1, 64)
	}
	if cfg.Type.Spectral() {
		meta.Spectrum = cfg.Spectrum.String()
		meta.Discretization = cfg.Discretization.String()
	}
	return meta
}

// Save writes the run metadata, the elevation series and, for spectral
// runs, the discretized spectrum. It returns the run ID.
func (s *Store) Save(st *wave.State, metrics map[string]float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", st.Config.Type, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := newMetadata(runID, st, metrics)
	if err := writeFile(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}); err != nil {
		return "", err
	}

	if err := writeFile(filepath.Join(runDir, elevationFile), func(w io.Writer) error {
		return WriteElevationCSV(w, st.Origin, st.Gauges)
	}); err != nil {
		return "", err
	}

	if st.Config.Type.Spectral() {
		if err := writeFile(filepath.Join(runDir, spectrumFile), func(w io.Writer) error {
			return writeSpectrumCSV(w, st)
		}); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteElevationCSV writes time, origin and gauge elevations, one row per sample.
func WriteElevationCSV(out io.Writer, origin wave.ElevationSeries, gauges [3]wave.ElevationSeries) error {
	w := csv.NewWriter(out)
	if err := w.Write(elevationHeader); err != nil {
		return err
	}
	for i := range origin.Time {
		row := make([]string, 0, len(elevationHeader))
		row = append(row, formatFloat(origin.Time[i]), formatFloat(origin.Eta[i]))
		for _, g := range gauges {
			v := 0.0
			if i < len(g.Eta) {
				v = g.Eta[i]
			}
			row = append(row, formatFloat(v))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeSpectrumCSV(out io.Writer, st *wave.State) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"w", "dw", "s", "a", "k"}); err != nil {
		return err
	}
	for i := range st.Grid.W {
		row := []string{
			formatFloat(st.Grid.W[i]),
			formatFloat(st.Grid.DW[i]),
			formatFloat(st.Spectrum.S[i]),
			formatFloat(st.Spectrum.A[i]),
			formatFloat(st.K[i]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadElevation reads back the origin and gauge series of a run.
func (s *Store) LoadElevation(runID string) (wave.ElevationSeries, [3]wave.ElevationSeries, error) {
	var (
		origin wave.ElevationSeries
		gauges [3]wave.ElevationSeries
	)

	cols, err := readColumns(filepath.Join(s.baseDir, runID, elevationFile), len(elevationHeader))
	if err != nil {
		return origin, gauges, err
	}

	origin = wave.ElevationSeries{Time: cols[0], Eta: cols[1]}
	for i := range gauges {
		gauges[i] = wave.ElevationSeries{Time: cols[0], Eta: cols[i+2]}
	}
	return origin, gauges, nil
}

// SpectrumRows is the discretized spectrum stored with a spectral run.
type SpectrumRows struct {
	W, DW, S, A, K []float64
}

// LoadSpectrum reads back the spectrum of a spectral run.
func (s *Store) LoadSpectrum(runID string) (*SpectrumRows, error) {
	cols, err := readColumns(filepath.Join(s.baseDir, runID, spectrumFile), 5)
	if err != nil {
		return nil, err
	}
	return &SpectrumRows{W: cols[0], DW: cols[1], S: cols[2], A: cols[3], K: cols[4]}, nil
}

func readColumns(path string, n int) ([][]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = n

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	cols := make([][]float64, n)
	if len(records) < 2 {
		return cols, nil
	}
	for j := range cols {
		cols[j] = make([]float64, 0, len(records)-1)
	}
	for i, record := range records[1:] {
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d column %d: %w", filepath.Base(path), i+2, j+1, err)
			}
			cols[j] = append(cols[j], v)
		}
	}
	return cols, nil
}
