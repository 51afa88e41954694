package apdl

import "strconv"

// ReactionsFile is the file (name, extension) the post block writes into
// the solver run directory; the orchestrator collects reactions from it.
const (
	ReactionsFileName = "reactions"
	ReactionsFileExt  = "txt"
)

// WriteSolve emits the nonlinear static solve block: large deformation on,
// fixed substep schedule, generous equilibrium iteration budget, results
// for the last step only.
func WriteSolve(d *Deck, substeps int) {
	d.Cmd("ALLSEL")
	d.Cmd("NLGEOM", "ON")
	d.Cmd("NSUBST", substeps, 10*substeps, substeps)
	d.Cmd("NEQIT", 1000)
	d.Cmd("OUTRES", "ALL", "LAST")
	d.Cmd("SOLVE")
	d.Cmd("FINISH")
}

// WritePost emits the /POST1 block that sums reactions over the driven
// component and writes the convergence flag, applied displacement,
// reaction forces/moments and gauge length to the reactions file. The
// orchestrator turns a zero convergence flag into a NaN result row.
func WritePost(d *Deck, displacement, length float64) {
	d.Cmd("/POST1")
	d.Cmd("SET", "LAST")
	d.Cmd("CMSEL", "S", "driven")
	d.Raw("*GET,CNVG,ACTIVE,0,SOLU,CNVG")
	d.Cmd("FSUM")
	for _, item := range []string{"FX", "FY", "FZ", "MX", "MY", "MZ"} {
		d.Raw("*GET,R" + item + ",FSUM,0,ITEM," + item)
	}
	d.Raw("DISP=" + strconv.FormatFloat(displacement, 'g', -1, 64))
	d.Raw("GLEN=" + strconv.FormatFloat(length, 'g', -1, 64))
	d.Cmd("*CFOPEN", ReactionsFileName, ReactionsFileExt)
	d.Raw("*VWRITE,CNVG,DISP,RFX,RFY,RFZ,RMX,RMY,RMZ,GLEN")
	d.Raw("(9(ES16.8,2X))")
	d.Cmd("*CFCLOS")
	d.Cmd("FINISH")
}
