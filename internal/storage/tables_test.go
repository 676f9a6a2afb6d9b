package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestReadSpectrumTable(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		rows      int
		withPhase bool
	}{
		{"comma", "f,S\n0.05,0.1\n0.10,0.8\n0.15,0.3\n", 3, false},
		{"whitespace", "# exported spectrum\n0.05 0.1 1.0\n0.10\t0.8\t2.0\n\n", 2, true},
		{"semicolon", "0.05;0.1\n0.10;0.8\n", 2, false},
		{"header with units", "Frequency (Hz), Density (m2/Hz)\n0.05, 0.1\n0.1, 0.2\n", 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ReadSpectrumTable(writeTemp(t, "spec.txt", tt.content))
			if err != nil {
				t.Fatalf("read failed: %v", err)
			}
			if len(table.Freq) != tt.rows || len(table.Density) != tt.rows {
				t.Errorf("expected %d rows, got %d", tt.rows, len(table.Freq))
			}
			if table.HasPhase() != tt.withPhase {
				t.Errorf("HasPhase = %v, want %v", table.HasPhase(), tt.withPhase)
			}
		})
	}
}

func TestReadSpectrumTableValues(t *testing.T) {
	table, err := ReadSpectrumTable(writeTemp(t, "spec.csv", "0.05,0.1,3.5\n0.10,0.8,-1\n"))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if table.Freq[1] != 0.10 || table.Density[1] != 0.8 || table.Phase[1] != -1 {
		t.Errorf("unexpected row: %v %v %v", table.Freq[1], table.Density[1], table.Phase[1])
	}
}

func TestReadSpectrumTableErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"empty", "# nothing\n", "no data rows"},
		{"too many columns", "0.1,0.2,0.3,0.4\n", "columns"},
		{"bad number", "0.1,0.2\n0.2,abc\n", "column 2"},
		{"mixed phase", "0.1,0.2,1\n0.2,0.3\n", "phase column"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadSpectrumTable(writeTemp(t, "spec.csv", tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestReadElevationTable(t *testing.T) {
	table, err := ReadElevationTable(writeTemp(t, "eta.txt", "time eta\n0 0\n0.5 0.2\n1.0 -0.1\n"))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(table.Time) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(table.Time))
	}
	if table.Time[2] != 1 || table.Eta[2] != -0.1 {
		t.Errorf("unexpected last row %v %v", table.Time[2], table.Eta[2])
	}

	if _, err := ReadElevationTable(writeTemp(t, "eta.txt", "0 0 1\n")); err == nil {
		t.Error("expected error for three columns")
	}
	if _, err := ReadElevationTable(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
