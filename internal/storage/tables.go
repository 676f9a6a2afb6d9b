package storage

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/san-kum/seastate/internal/wave"
)

// ReadSpectrumTable reads a spectrum file with columns frequency (Hz),
// density (m^2/Hz) and an optional phase (rad).
func ReadSpectrumTable(path string) (*wave.SpectrumTable, error) {
	rows, err := readTableFile(path, 2, 3)
	if err != nil {
		return nil, err
	}

	t := &wave.SpectrumTable{
		Freq:    make([]float64, len(rows)),
		Density: make([]float64, len(rows)),
	}
	withPhase := len(rows) > 0 && len(rows[0]) == 3
	if withPhase {
		t.Phase = make([]float64, len(rows))
	}
	for i, row := range rows {
		if withPhase != (len(row) == 3) {
			return nil, fmt.Errorf("%s: row %d: phase column must be present on every row or none", path, i+1)
		}
		t.Freq[i], t.Density[i] = row[0], row[1]
		if withPhase {
			t.Phase[i] = row[2]
		}
	}
	return t, nil
}

// ReadElevationTable reads an elevation file with columns time (s) and
// elevation (m).
func ReadElevationTable(path string) (*wave.ElevationTable, error) {
	rows, err := readTableFile(path, 2, 2)
	if err != nil {
		return nil, err
	}

	t := &wave.ElevationTable{
		Time: make([]float64, len(rows)),
		Eta:  make([]float64, len(rows)),
	}
	for i, row := range rows {
		t.Time[i], t.Eta[i] = row[0], row[1]
	}
	return t, nil
}

func readTableFile(path string, minCols, maxCols int) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := readTable(f, minCols, maxCols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// readTable parses numeric rows separated by commas, semicolons or
// whitespace. Blank lines and '#' or '%' comments are skipped, as are
// non-numeric lines before the first data row.
func readTable(r io.Reader, minCols, maxCols int) ([][]float64, error) {
	var rows [][]float64

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' || text[0] == '%' {
			continue
		}

		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ';' || unicode.IsSpace(r)
		})
		if len(fields) == 0 {
			continue
		}
		if _, err := strconv.ParseFloat(fields[0], 64); err != nil && len(rows) == 0 {
			continue
		}
		if len(fields) < minCols || len(fields) > maxCols {
			return nil, fmt.Errorf("line %d: want %d to %d columns, got %d", line, minCols, maxCols, len(fields))
		}

		row := make([]float64, len(fields))
		for j, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %d: %w", line, j+1, err)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data rows")
	}
	return rows, nil
}
