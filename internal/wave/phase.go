package wave

import (
	crand "crypto/rand"
	"encoding/binary"
	"math"
	"math/rand"
	"time"
)

// NewPhaseSource returns the random source for phase generation. A non-zero
// seed is used as is; seed 0 draws a seed from system entropy.
func NewPhaseSource(seed int64) *rand.Rand {
	if seed == 0 {
		var buf [8]byte
		if _, err := crand.Read(buf[:]); err == nil {
			seed = int64(binary.LittleEndian.Uint64(buf[:]))
		} else {
			seed = time.Now().UnixNano()
		}
	}
	return rand.New(rand.NewSource(seed))
}

// GeneratePhases assigns a phase in [0, 2π) to every (frequency, direction)
// pair. Imported spectra with a phase column use those phases in a single
// column; imported spectra without one draw a single column at random.
// Draws are taken direction by direction, each over all frequencies.
func GeneratePhases(cfg Config, grid FrequencyGrid, src *rand.Rand) PhaseMatrix {
	cfg = cfg.normalized()
	n := grid.Len()

	if cfg.Discretization == Imported {
		pm := NewPhaseMatrix(n, 1)
		if cfg.SpectrumData.HasPhase() && len(grid.rows) == n {
			for i, r := range grid.rows {
				pm.set(i, 0, wrapPhase(cfg.SpectrumData.Phase[r]))
			}
			return pm
		}
		for i := 0; i < n; i++ {
			pm.set(i, 0, 2*math.Pi*src.Float64())
		}
		return pm
	}

	dirs := len(cfg.Directions)
	pm := NewPhaseMatrix(n, dirs)
	for j := 0; j < dirs; j++ {
		for i := 0; i < n; i++ {
			pm.set(i, j, 2*math.Pi*src.Float64())
		}
	}
	return pm
}

func wrapPhase(p float64) float64 {
	p = math.Mod(p, 2*math.Pi)
	if p < 0 {
		p += 2 * math.Pi
	}
	if p >= 2*math.Pi {
		return 0
	}
	return p
}
