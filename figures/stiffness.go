package figures

import (
	"math"

	"github.com/deploylab/trussim/apdl"
	"github.com/deploylab/trussim/results"
	"github.com/pkg/errors"
)

// SolidBeamEI is the flexural modulus of the equivalent solid square beam
// (E = 962.8, side 4.40908153701 mm) that the deployment and aspect-ratio
// figures normalize against, in N*m^2.
const SolidBeamEI = 962.8 / 12.0 * 4.40908153701 * 4.40908153701 *
	4.40908153701 * 4.40908153701 / (1000.0 * 1000.0)

// Loads reduces a result table to the quantities the stiffness metrics
// need: the dominant reaction force and moment magnitudes from the last
// load step (NaN reactions from a non-converged solve count as zero), plus
// the applied displacement and gauge length.
type Loads struct {
	F, M         float64
	Displacement float64
	Length       float64
}

func LastLoads(recs []results.Record) (Loads, error) {
	if len(recs) == 0 {
		return Loads{}, errors.New("empty result table")
	}
	r := recs[len(recs)-1]
	return Loads{
		F:            maxAbs(r.FX, r.FY, r.FZ),
		M:            maxAbs(r.MX, r.MY, r.MZ),
		Displacement: r.Displacement,
		Length:       r.L,
	}, nil
}

func maxAbs(vals ...float64) float64 {
	out := 0.0
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if a := math.Abs(v); a > out {
			out = a
		}
	}
	return out
}

// FlexuralModulus is the cantilever tip-load estimate EI = L^3 F / (3 d),
// reported in N*m^2 (hence the mm^2 scale division).
func FlexuralModulus(l Loads) float64 {
	return l.Length * l.Length * l.Length * l.F / (3.0 * l.Displacement) / (1000.0 * 1000.0)
}

// Stiffness evaluates the metric for a load case: flexural modulus for the
// cantilever tests, axial stiffness F/d (d in meters) for compression and
// tension, torsional stiffness M/theta for torsion.
func Stiffness(test apdl.BCType, l Loads) float64 {
	switch test {
	case apdl.CantX, apdl.CantZ:
		return FlexuralModulus(l)
	case apdl.Compression, apdl.Tension:
		return l.F / (l.Displacement / 1000.0)
	case apdl.Torsion:
		return l.M / l.Displacement
	}
	return math.NaN()
}
