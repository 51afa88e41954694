package results

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
)

// BoundaryParams records the load case actually applied in a run, written
// as a one-row sidecar CSV next to the result table so a result file can
// be interpreted without the run log.
type BoundaryParams struct {
	Boundary            string
	MechType            string
	PercentDisplacement float64
	FixedDisplacement   *float64 // nil when the displacement was percent derived
	Displacement        float64  // absolute displacement applied
}

// WriteBoundaryParams writes the sidecar CSV.
func WriteBoundaryParams(path string, bp BoundaryParams) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create sidecar directory")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create sidecar file")
	}
	defer f.Close()

	fixed := ""
	if bp.FixedDisplacement != nil {
		fixed = strconv.FormatFloat(*bp.FixedDisplacement, 'g', -1, 64)
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"boundary_condition", "mech_type", "percent_displacement", "fixed_displacement", "displacement"}); err != nil {
		return errors.Wrap(err, "write sidecar header")
	}
	row := []string{
		bp.Boundary,
		bp.MechType,
		strconv.FormatFloat(bp.PercentDisplacement, 'g', -1, 64),
		fixed,
		strconv.FormatFloat(bp.Displacement, 'g', -1, 64),
	}
	if err := w.Write(row); err != nil {
		return errors.Wrap(err, "write sidecar row")
	}
	w.Flush()
	return errors.Wrap(w.Error(), "flush sidecar file")
}
