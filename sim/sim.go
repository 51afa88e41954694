package sim

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/deploylab/trussim/apdl"
	"github.com/deploylab/trussim/geometry"
	"github.com/deploylab/trussim/results"
	"github.com/deploylab/trussim/solver"
)

// Params describes one simulation: which model file to load, how to mesh
// it, and which load case to apply.
type Params struct {
	ModelFile  string // geometry CSV filename, with or without extension
	FolderPath string // directory holding the geometry CSV
	Mech       geometry.MechType
	Boundary   apdl.Boundary

	PercentDisplacement float64  // percent of gauge length
	FixedDisplacement   *float64 // overrides the percent displacement when set

	Substeps         int
	NumElements      int
	NumCrossElements int
	ElementType      string
	Scale            float64
	CrossScale       float64
	E                float64
	Warp             bool

	ResultName string // optional result file override
}

// DefaultParams mirrors the single-run defaults of the command line tool.
func DefaultParams() Params {
	return Params{
		PercentDisplacement: 1.0,
		Substeps:            10,
		NumElements:         10,
		NumCrossElements:    3,
		ElementType:         "BEAM188",
		Scale:               1.0,
		CrossScale:          1.0,
		E:                   962.8,
	}
}

// Paths locates the run and result trees.
type Paths struct {
	LogRoot     string // per-run solver directories, default "log"
	ResultsRoot string // result tables, default "data/results"
}

// ModelName is the model file name without its extension; it keys run
// directories, result files and mass table entries.
func (p Params) ModelName() string {
	return strings.TrimSuffix(p.ModelFile, filepath.Ext(p.ModelFile))
}

func (p Params) configPath() string {
	name := p.ModelName() + ".csv"
	if ext := filepath.Ext(p.ModelFile); ext != "" {
		name = p.ModelName() + ext
	}
	return filepath.Join(p.FolderPath, name)
}

// BuildDeck loads and scales the model, then assembles the full input
// deck: material, meshed geometry with end treatment, boundary
// conditions, solve and post blocks. It returns the deck plus the applied
// displacement and gauge length for the result record.
func BuildDeck(p Params) (*apdl.Deck, float64, float64, error) {
	m, err := geometry.ReadModelCSV(p.configPath())
	if err != nil {
		return nil, 0, 0, err
	}
	scaled := m.Scale(p.Scale, p.CrossScale)

	b := geometry.FindBounds(scaled)
	length := geometry.GaugeLength(p.Mech, b)
	displacement := geometry.Displacement(p.Mech, b, p.PercentDisplacement)
	if p.FixedDisplacement != nil {
		displacement = *p.FixedDisplacement
	}

	d := apdl.NewDeck()
	apdl.WriteMaterial(d, apdl.Material{E: p.E, Nu: 0.3, Rho: 7800.0})
	apdl.WriteBeamModel(d, scaled, p.Mech, apdl.MeshOptions{
		ElementType:      p.ElementType,
		NDiv:             p.NumElements,
		NumCrossElements: p.NumCrossElements,
		Warp:             p.Warp,
	})
	apdl.WriteBoundary(d, p.Boundary, b, displacement)
	apdl.WriteSolve(d, p.Substeps)
	apdl.WritePost(d, displacement, length)
	return d, displacement, length, nil
}

// Run executes one simulation end to end: build the deck, drive the
// solver, collect reactions, write the result table and its boundary
// sidecar, then clean the run directory down to the archival files.
// It reports whether the solve converged.
func Run(ctx context.Context, cfg solver.Config, paths Paths, p Params) (bool, error) {
	folderName := filepath.Base(p.FolderPath)

	run, err := solver.NewRun(paths.LogRoot, folderName, p.ModelName(), p.Boundary.Name())
	if err != nil {
		return false, err
	}
	defer run.Close()

	deck, displacement, length, err := BuildDeck(p)
	if err != nil {
		run.Log.WithError(err).Error("deck generation failed")
		return false, err
	}
	if err := deck.WriteFile(run.DeckPath()); err != nil {
		return false, err
	}
	run.Log.WithField("commands", deck.Len()).Info("input deck written")

	if err := cfg.Execute(ctx, run); err != nil {
		return false, err
	}

	rx, err := run.Reactions()
	if err != nil {
		return false, err
	}

	rec := results.Record{
		Displacement: displacement,
		FX:           rx.FX, FY: rx.FY, FZ: rx.FZ,
		MX: rx.MX, MY: rx.MY, MZ: rx.MZ,
		L: length,
	}
	if !rx.Converged {
		run.Log.Warn("solution did not converge")
		rec = results.NotConverged(displacement, length)
	}

	resultPath := results.ResultPath(paths.ResultsRoot, folderName, p.ModelName(), p.Boundary.Name(), p.ResultName)
	if err := results.WriteCSV(resultPath, []results.Record{rec}); err != nil {
		return false, err
	}
	run.Log.WithField("path", resultPath).Info("result table written")

	sidecar := filepath.Join(paths.ResultsRoot, folderName, "bc",
		p.ModelName()+"_"+p.Boundary.Name()+"_bc.csv")
	if err := results.WriteBoundaryParams(sidecar, results.BoundaryParams{
		Boundary:            p.Boundary.Name(),
		MechType:            string(p.Mech),
		PercentDisplacement: p.PercentDisplacement,
		FixedDisplacement:   p.FixedDisplacement,
		Displacement:        displacement,
	}); err != nil {
		return false, err
	}

	if err := run.Cleanup(); err != nil {
		return false, errors.Wrap(err, "clean run directory")
	}
	return rx.Converged, nil
}
