package results

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
)

// Record is one row of a simulation result table: the applied displacement,
// the summed reaction forces and moments over the driven component, and the
// gauge length of the model.
type Record struct {
	Displacement float64
	FX, FY, FZ   float64
	MX, MY, MZ   float64
	L            float64
}

var header = []string{"Displacement", "FX", "FY", "FZ", "MX", "MY", "MZ", "L"}

// NotConverged builds the NaN row written when a solve fails to converge,
// so downstream aggregation can tell "failed" from "zero reaction".
func NotConverged(displacement, length float64) Record {
	nan := math.NaN()
	return Record{
		Displacement: displacement,
		FX:           nan, FY: nan, FZ: nan,
		MX: nan, MY: nan, MZ: nan,
		L: length,
	}
}

func (r Record) row() []string {
	vals := []float64{r.Displacement, r.FX, r.FY, r.FZ, r.MX, r.MY, r.MZ, r.L}
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return out
}

// WriteCSV writes records with the canonical header, creating parent
// directories as needed.
func WriteCSV(path string, records []Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create results directory")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create results file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return errors.Wrap(err, "write header")
	}
	for _, r := range records {
		if err := w.Write(r.row()); err != nil {
			return errors.Wrap(err, "write record")
		}
	}
	w.Flush()
	return errors.Wrap(w.Error(), "flush results file")
}

// ReadCSV reads a result table written by WriteCSV (or by the original
// tooling; column order is fixed, NaN cells parse as NaN).
func ReadCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open results file")
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "read results file %s", path)
	}
	if len(rows) == 0 {
		return nil, errors.Errorf("results file %s is empty", path)
	}

	out := make([]Record, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if len(row) < len(header) {
			return nil, errors.Errorf("row %d has %d columns, want %d", n+2, len(row), len(header))
		}
		vals := make([]float64, len(header))
		for i := range header {
			v, err := strconv.ParseFloat(row[i], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "row %d column %s", n+2, header[i])
			}
			vals[i] = v
		}
		out = append(out, Record{
			Displacement: vals[0],
			FX:           vals[1], FY: vals[2], FZ: vals[3],
			MX: vals[4], MY: vals[5], MZ: vals[6],
			L: vals[7],
		})
	}
	return out, nil
}

// ResultPath is the conventional location of a result table:
// <root>/<folder>/<model>_<bc>.csv, or <root>/<folder>/<override>.csv when
// an explicit result name was given.
func ResultPath(root, folderName, modelName, bcName, override string) string {
	name := modelName + "_" + bcName
	if override != "" {
		name = override
	}
	return filepath.Join(root, folderName, name+".csv")
}
