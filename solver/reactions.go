package solver

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Reactions is the reaction summary the deck's post block writes: the
// convergence flag, the applied displacement, the summed forces and
// moments over the driven component, and the gauge length.
type Reactions struct {
	Converged    bool
	Displacement float64
	FX, FY, FZ   float64
	MX, MY, MZ   float64
	Length       float64
}

// Reactions parses the reactions file from the run directory. The file is
// one *VWRITE record of nine Fortran formatted floats.
func (r *Run) Reactions() (Reactions, error) {
	data, err := os.ReadFile(r.ReactionsPath())
	if err != nil {
		return Reactions{}, errors.Wrap(err, "read reactions file")
	}
	return parseReactions(string(data))
}

func parseReactions(s string) (Reactions, error) {
	fields := strings.Fields(s)
	if len(fields) != 9 {
		return Reactions{}, errors.Errorf("reactions file has %d fields, want 9", len(fields))
	}
	vals := make([]float64, 9)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Reactions{}, errors.Wrapf(err, "reactions field %d", i)
		}
		vals[i] = v
	}
	return Reactions{
		Converged:    vals[0] == 1.0,
		Displacement: vals[1],
		FX:           vals[2], FY: vals[3], FZ: vals[4],
		MX: vals[5], MY: vals[6], MZ: vals[7],
		Length: vals[8],
	}, nil
}
