package config

import "sort"

// Presets maps a name to a function that adjusts the default configuration.
var Presets = map[string]func(*Config){
	"calm": func(c *Config) {
		c.Wave = WaveConfig{Type: "noWave", Period: 10}
	},
	"regular": func(c *Config) {
		c.Wave = WaveConfig{Type: "regular", Period: 8, Height: 2}
		c.Simulation.RampTime = 40
	},
	"pm": func(c *Config) {
		c.Wave = WaveConfig{
			Type: "irregular", Spectrum: "PM", Discretization: "traditional",
			Period: 10, Height: 3, PhaseSeed: 1,
		}
		c.Simulation.RampTime = 100
	},
	"jonswap": func(c *Config) {
		c.Wave = WaveConfig{
			Type: "irregular", Spectrum: "JS", Discretization: "traditional",
			Period: 12, Height: 4, Gamma: 3.3, PhaseSeed: 1,
		}
		c.Simulation.RampTime = 100
	},
	"equal-energy": func(c *Config) {
		c.Wave = WaveConfig{
			Type: "irregular", Spectrum: "JS", Discretization: "equalEnergy",
			Period: 10, Height: 2.5, PhaseSeed: 1,
		}
		c.Simulation.RampTime = 100
	},
	"spread": func(c *Config) {
		c.Wave = WaveConfig{
			Type: "irregular", Spectrum: "PM", Discretization: "equalEnergy",
			Period: 9, Height: 2, PhaseSeed: 1,
			Directions: []float64{-30, 0, 30}, Spread: []float64{0.25, 0.5, 0.25},
		}
		c.Simulation.RampTime = 100
		c.Gauges = []GaugeConfig{{X: 50}, {Y: 50}, {X: -50, Y: 50}}
	},
	"shallow": func(c *Config) {
		c.Wave = WaveConfig{
			Type: "irregular", Spectrum: "JS", Discretization: "traditional",
			Period: 8, Height: 1.5, PhaseSeed: 1,
		}
		c.Simulation.RampTime = 60
		c.Simulation.WaterDepth = 25
	},
}

// GetPreset returns a fresh configuration for the named preset, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
