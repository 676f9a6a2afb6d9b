package wave

import (
	"fmt"
	"strings"
)

// Type selects how elevation is produced.
type Type int

const (
	typeUnset Type = iota
	NoWave
	NoWaveCIC
	Regular
	RegularCIC
	Irregular
	SpectrumImport
	EtaImport
)

var typeNames = map[Type]string{
	NoWave:         "noWave",
	NoWaveCIC:      "noWaveCIC",
	Regular:        "regular",
	RegularCIC:     "regularCIC",
	Irregular:      "irregular",
	SpectrumImport: "spectrumImport",
	EtaImport:      "etaImport",
}

// Types lists every wave type in declaration order.
func Types() []Type {
	return []Type{NoWave, NoWaveCIC, Regular, RegularCIC, Irregular, SpectrumImport, EtaImport}
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Spectral reports whether the type is synthesized from a spectrum.
func (t Type) Spectral() bool {
	return t == Irregular || t == SpectrumImport
}

// ParseType maps a case-insensitive wave type name to its Type.
func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if strings.EqualFold(s, name) {
			return t, nil
		}
	}
	return typeUnset, fmt.Errorf("%w: %q", ErrUnknownWaveType, s)
}

// SpectrumType selects the spectral density model.
type SpectrumType int

const (
	spectrumUnset SpectrumType = iota
	PiersonMoskowitz
	JONSWAP
	ImportedSpectrum
	// Bretschneider is recognized only so that requests for it fail fast.
	Bretschneider
)

func (s SpectrumType) String() string {
	switch s {
	case PiersonMoskowitz:
		return "PM"
	case JONSWAP:
		return "JS"
	case ImportedSpectrum:
		return "Imported"
	case Bretschneider:
		return "BS"
	default:
		return fmt.Sprintf("SpectrumType(%d)", int(s))
	}
}

// ParseSpectrumType accepts the short and long spectrum names. "BS" parses
// but is rejected later by ComputeSpectrum.
func ParseSpectrumType(s string) (SpectrumType, error) {
	switch strings.ToLower(s) {
	case "pm", "pierson-moskowitz", "piersonmoskowitz":
		return PiersonMoskowitz, nil
	case "js", "jonswap":
		return JONSWAP, nil
	case "imported", "import":
		return ImportedSpectrum, nil
	case "bs", "bretschneider":
		return Bretschneider, nil
	}
	return spectrumUnset, fmt.Errorf("%w: %q", ErrUnknownSpectrum, s)
}

// Discretization selects how the frequency grid is built.
type Discretization int

const (
	discretizationUnset Discretization = iota
	Traditional
	EqualEnergy
	Imported
)

func (d Discretization) String() string {
	switch d {
	case Traditional:
		return "Traditional"
	case EqualEnergy:
		return "EqualEnergy"
	case Imported:
		return "Imported"
	default:
		return fmt.Sprintf("Discretization(%d)", int(d))
	}
}

// ParseDiscretization maps a case-insensitive discretization name.
func ParseDiscretization(s string) (Discretization, error) {
	switch strings.ToLower(s) {
	case "traditional":
		return Traditional, nil
	case "equalenergy", "equal-energy", "equal_energy":
		return EqualEnergy, nil
	case "imported", "import":
		return Imported, nil
	}
	return discretizationUnset, fmt.Errorf("%w: %q", ErrUnknownDiscretization, s)
}

// FrequencyGrid holds frequency samples w (rad/s, increasing) and their
// bandwidths dw (rad/s, positive). Single-frequency types carry dw = 1.
type FrequencyGrid struct {
	W  []float64
	DW []float64

	// rows maps imported samples back to their spectrum table row.
	rows []int
}

func (g FrequencyGrid) Len() int { return len(g.W) }

// SpectrumState is the spectral density S (m^2 s/rad) and component
// amplitude A = 2S, aligned with a FrequencyGrid.
type SpectrumState struct {
	S []float64
	A []float64
}

// PhaseMatrix stores one phase per (frequency, direction) pair, frequency-major.
type PhaseMatrix struct {
	freqs int
	dirs  int
	data  []float64
}

// NewPhaseMatrix allocates a zeroed matrix.
func NewPhaseMatrix(freqs, dirs int) PhaseMatrix {
	return PhaseMatrix{freqs: freqs, dirs: dirs, data: make([]float64, freqs*dirs)}
}

func (p PhaseMatrix) Freqs() int { return p.freqs }
func (p PhaseMatrix) Dirs() int  { return p.dirs }

// At returns the phase of frequency i and direction j. A single-column
// matrix serves every direction.
func (p PhaseMatrix) At(i, j int) float64 {
	if p.dirs == 1 {
		j = 0
	}
	return p.data[i*p.dirs+j]
}

func (p PhaseMatrix) set(i, j int, v float64) {
	p.data[i*p.dirs+j] = v
}

// Equal reports whether both matrices have the same shape and values.
func (p PhaseMatrix) Equal(o PhaseMatrix) bool {
	if p.freqs != o.freqs || p.dirs != o.dirs {
		return false
	}
	for i := range p.data {
		if p.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// ElevationSeries is an elevation time history sampled uniformly from t=0.
type ElevationSeries struct {
	Time []float64
	Eta  []float64
}

func (s ElevationSeries) Len() int { return len(s.Time) }

// Range returns the minimum and maximum elevation.
func (s ElevationSeries) Range() (lo, hi float64) {
	if len(s.Eta) == 0 {
		return 0, 0
	}
	lo, hi = s.Eta[0], s.Eta[0]
	for _, v := range s.Eta[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Gauge is an observation point offset from the origin (m).
type Gauge struct {
	X float64
	Y float64
}

// SpectrumTable is an externally supplied spectrum: frequency (Hz),
// density (m^2/Hz) and optional phase (rad).
type SpectrumTable struct {
	Freq    []float64
	Density []float64
	Phase   []float64
}

// HasPhase reports whether the table carries a phase column.
func (t *SpectrumTable) HasPhase() bool {
	return t != nil && len(t.Phase) == len(t.Freq) && len(t.Phase) > 0
}

// ElevationTable is an externally supplied elevation record: time (s) and
// elevation (m).
type ElevationTable struct {
	Time []float64
	Eta  []float64
}
