package results

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// MassTable maps model filenames to their physical mass, loaded from the
// mass.csv that ships next to each model family's geometry files.
type MassTable map[string]float64

// ReadMassTable loads a mass.csv with columns filename,mass.
func ReadMassTable(path string) (MassTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open mass table")
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "read mass table %s", path)
	}
	if len(rows) == 0 {
		return nil, errors.Errorf("mass table %s is empty", path)
	}

	fileCol, massCol := -1, -1
	for i, name := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "filename":
			fileCol = i
		case "mass":
			massCol = i
		}
	}
	if fileCol < 0 || massCol < 0 {
		return nil, errors.Errorf("mass table %s missing filename/mass columns", path)
	}

	table := make(MassTable, len(rows)-1)
	for n, row := range rows[1:] {
		m, err := strconv.ParseFloat(strings.TrimSpace(row[massCol]), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "mass table row %d", n+2)
		}
		table[strings.TrimSpace(row[fileCol])] = m
	}
	return table, nil
}

// Lookup finds the mass for a result file. Result files are named
// <model>_<bc>.csv while the mass table keys on the bare model filename,
// so the boundary condition suffix is stripped before the lookup.
func (t MassTable) Lookup(resultBase, bcName string) (float64, bool) {
	key := strings.Replace(resultBase, "_"+bcName, "", 1)
	m, ok := t[key]
	return m, ok
}
