package storage

import (
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/san-kum/seastate/internal/wave"
)

// ElevationRow is one sample of a run in columnar form.
type ElevationRow struct {
	Time   float64 `parquet:"time"`
	Origin float64 `parquet:"origin"`
	Gauge1 float64 `parquet:"gauge1"`
	Gauge2 float64 `parquet:"gauge2"`
	Gauge3 float64 `parquet:"gauge3"`
}

// ElevationRows flattens the origin and gauge series into rows.
func ElevationRows(origin wave.ElevationSeries, gauges [3]wave.ElevationSeries) []ElevationRow {
	at := func(s wave.ElevationSeries, i int) float64 {
		if i < len(s.Eta) {
			return s.Eta[i]
		}
		return 0
	}

	rows := make([]ElevationRow, origin.Len())
	for i := range rows {
		rows[i] = ElevationRow{
			Time:   origin.Time[i],
			Origin: origin.Eta[i],
			Gauge1: at(gauges[0], i),
			Gauge2: at(gauges[1], i),
			Gauge3: at(gauges[2], i),
		}
	}
	return rows
}

// WriteParquet writes the elevation rows zstd-compressed.
func WriteParquet(w io.Writer, rows []ElevationRow) error {
	pw := parquet.NewGenericWriter[ElevationRow](w, parquet.Compression(&parquet.Zstd))
	if _, err := pw.Write(rows); err != nil {
		pw.Close()
		return err
	}
	return pw.Close()
}

// ExportParquet writes the elevation series of a run to path.
func ExportParquet(path string, st *wave.State) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteParquet(w, ElevationRows(st.Origin, st.Gauges))
	})
}

// ReadParquet reads all rows of a file written by ExportParquet.
func ReadParquet(path string) ([]ElevationRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gr := parquet.NewGenericReader[ElevationRow](f)
	defer gr.Close()

	out := make([]ElevationRow, 0, gr.NumRows())
	batch := make([]ElevationRow, 1024)
	for {
		n, err := gr.Read(batch)
		if n > 0 {
			out = append(out, batch[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
