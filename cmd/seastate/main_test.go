package main

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/seastate/internal/storage"
	"github.com/san-kum/seastate/internal/wave"
)

func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addWaveFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(newTestCommand(t))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	wc, p, err := cfg.ToWave()
	if err != nil {
		t.Fatalf("to wave: %v", err)
	}
	if wc.Type != wave.Regular || wc.Period != 8 || wc.Height != 2 {
		t.Errorf("unexpected defaults %+v", wc)
	}
	if !p.DeepWater() || p.Dt != 0.1 {
		t.Errorf("unexpected params %+v", p)
	}
}

func TestLoadConfigFlagsOverridePreset(t *testing.T) {
	cmd := newTestCommand(t, "--preset", "jonswap", "--height", "5", "--depth", "30", "--directions", "10,20", "--spread", "0.5,0.5")
	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Wave.Height != 5 {
		t.Errorf("expected height 5, got %g", cfg.Wave.Height)
	}
	if cfg.Wave.Gamma != 3.3 || cfg.Wave.Period != 12 {
		t.Errorf("preset values lost: %+v", cfg.Wave)
	}
	if float64(cfg.Simulation.WaterDepth) != 30 {
		t.Errorf("expected depth 30, got %g", float64(cfg.Simulation.WaterDepth))
	}
	if len(cfg.Wave.Directions) != 2 || cfg.Wave.Spread[1] != 0.5 {
		t.Errorf("directions not applied: %v %v", cfg.Wave.Directions, cfg.Wave.Spread)
	}
}

func TestLoadConfigSpectralTypeGetsDefaultSpectrum(t *testing.T) {
	cfg, err := loadConfig(newTestCommand(t, "--type", "irregular"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	wc, _, err := cfg.ToWave()
	if err != nil {
		t.Fatalf("to wave: %v", err)
	}
	if wc.Spectrum != wave.PiersonMoskowitz {
		t.Errorf("expected PM, got %v", wc.Spectrum)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := loadConfig(newTestCommand(t, "--preset", "hurricane")); err == nil {
		t.Error("expected unknown preset error")
	}
	if _, err := loadConfig(newTestCommand(t, "--depth", "-3")); err == nil {
		t.Error("expected depth error")
	}
	if _, err := loadConfig(newTestCommand(t, "--config", filepath.Join(t.TempDir(), "none.yaml"))); err == nil {
		t.Error("expected missing config error")
	}
}

func TestRunMetrics(t *testing.T) {
	st, err := buildState(newTestCommand(t, "--time", "200", "--height", "3"))
	if err != nil {
		t.Fatalf("build state: %v", err)
	}

	m := runMetrics(st)
	for _, key := range []string{"hs", "hm0", "hmax", "h13", "tz", "power"} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing metric %s", key)
		}
	}
	if d := m["tz"] - 8; d > 0.01 || d < -0.01 {
		t.Errorf("regular wave Tz = %g, want 8", m["tz"])
	}
	if d := m["hmax"] - 3; d > 0.01 || d < -0.01 {
		t.Errorf("regular wave Hmax = %g, want 3", m["hmax"])
	}
	if rows := metricRows(m); len(rows) != 6 {
		t.Errorf("expected 6 metric rows, got %d", len(rows))
	}

	store := storage.New(t.TempDir())
	if _, err := store.Save(st, m); err != nil {
		t.Fatalf("save: %v", err)
	}
}

func TestLoadOriginFromExportAndStore(t *testing.T) {
	st, err := buildState(newTestCommand(t, "--time", "50"))
	if err != nil {
		t.Fatalf("build state: %v", err)
	}

	path := filepath.Join(t.TempDir(), "run.json")
	if err := storage.ExportJSON(path, st, nil); err != nil {
		t.Fatalf("export: %v", err)
	}
	origin, step, waveType, err := loadOrigin(path)
	if err != nil {
		t.Fatalf("load export: %v", err)
	}
	if origin.Len() != st.Origin.Len() || step != st.Params.Dt || waveType != "regular" {
		t.Errorf("export gave %d samples, dt %g, type %s", origin.Len(), step, waveType)
	}

	prev := dataDir
	dataDir = t.TempDir()
	defer func() { dataDir = prev }()
	runID, err := storage.New(dataDir).Save(st, nil)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	origin, step, _, err = loadOrigin(runID)
	if err != nil {
		t.Fatalf("load run: %v", err)
	}
	if origin.Len() != st.Origin.Len() || step != st.Params.Dt {
		t.Errorf("run gave %d samples, dt %g", origin.Len(), step)
	}

	if _, _, _, err := loadOrigin("missing"); err == nil {
		t.Error("expected error for unknown run")
	}
}
