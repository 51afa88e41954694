package figures

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"

	"github.com/deploylab/trussim/apdl"
	"github.com/deploylab/trussim/results"
)

// SweepConfig drives the extension-ratio sweep figures: one figure per
// load case, with and without mass normalization.
type SweepConfig struct {
	ResultsDir  string // extension-ratio sweep result tables
	MassDataDir string // model tree holding <family>/extension_ratio_sweep/mass.csv
	PlotsDir    string
	Workers     int

	// Tests defaults to the four paper load cases when empty.
	Tests []apdl.BCType
}

var sweepYLabels = map[apdl.BCType]string{
	apdl.CantX:       "Flexural Modulus (EI)",
	apdl.Compression: "Compressive Stiffness",
	apdl.Torsion:     "Torsional Stiffness",
	apdl.Tension:     "Tensile Stiffness",
}

type sweepPoint struct {
	family Family
	pt     Point
}

// Sweep builds every extension-ratio sweep figure and returns the written
// SVG paths.
func Sweep(ctx context.Context, cfg SweepConfig) ([]string, error) {
	tests := cfg.Tests
	if len(tests) == 0 {
		tests = []apdl.BCType{apdl.CantX, apdl.Compression, apdl.Torsion, apdl.Tension}
	}

	var outs []string
	for _, test := range tests {
		for _, normalize := range []bool{true, false} {
			out, err := sweepFigure(ctx, cfg, test, normalize)
			if err != nil {
				return nil, err
			}
			outs = append(outs, out)
		}
	}
	return outs, nil
}

func sweepFigure(ctx context.Context, cfg SweepConfig, test apdl.BCType, normalize bool) (string, error) {
	paths, err := filepath.Glob(filepath.Join(cfg.ResultsDir, "*"+string(test)+"*"))
	if err != nil {
		return "", errors.Wrap(err, "glob sweep results")
	}
	if len(paths) == 0 {
		return "", errors.Errorf("no %s results under %s", test, cfg.ResultsDir)
	}

	var masses map[Family]results.MassTable
	if normalize {
		if masses, err = readMassTables(cfg.MassDataDir); err != nil {
			return "", err
		}
	}

	points, err := Aggregate(ctx, paths, cfg.Workers, func(_ context.Context, path string) (sweepPoint, bool, error) {
		sp, ok := processSweepFile(path, test, masses)
		return sp, ok, nil
	})
	if err != nil {
		return "", err
	}

	if len(points) == 0 {
		return "", errors.Errorf("no usable %s samples under %s", test, cfg.ResultsDir)
	}

	series := map[Family][]Point{}
	for _, sp := range points {
		series[sp.family] = append(series[sp.family], sp.pt)
	}
	for _, pts := range series {
		sortByX(pts)
	}

	p := newFigure("Extension Ratio", sweepYLabel(test, normalize))
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.X.Min, p.X.Max = 0, 250

	if err := addScatter(p, "PET", series[FamilyPET], PETColor); err != nil {
		return "", err
	}
	if err := addScatter(p, "KRES", series[FamilyKresling], KreslingColor); err != nil {
		return "", err
	}
	if err := addScatter(p, "HERDS", series[FamilyHERDS], HERDSColor); err != nil {
		return "", err
	}

	out := filepath.Join(cfg.PlotsDir, fmt.Sprintf(
		"%s_%s_mass_norm_%t.svg",
		time.Now().Format("20060102_150405"), test, normalize))
	return out, savePlot(p, out)
}

func sweepYLabel(test apdl.BCType, normalize bool) string {
	label := sweepYLabels[test]
	if normalize {
		return label + " per Mass [N/(m^2 kg)]"
	}
	return label + " [N/m^2]"
}

// processSweepFile extracts a (extension ratio, stiffness) sample. Files
// that fail to parse or lack a mass entry are skipped rather than failing
// the whole figure: a sweep directory legitimately accumulates partial and
// stale results.
func processSweepFile(path string, test apdl.BCType, masses map[Family]results.MassTable) (sweepPoint, bool) {
	meta, err := ClassifyResult(path)
	if err != nil {
		log.WithError(err).Debug("skipping unclassifiable result")
		return sweepPoint{}, false
	}
	recs, err := results.ReadCSV(path)
	if err != nil {
		log.WithError(err).Debug("skipping unreadable result")
		return sweepPoint{}, false
	}
	loads, err := LastLoads(recs)
	if err != nil {
		return sweepPoint{}, false
	}

	mass := 1.0
	if masses != nil {
		table, ok := masses[meta.Family]
		if !ok {
			return sweepPoint{}, false
		}
		bcName := string(test) + meta.TestSuffix
		if mass, ok = table.Lookup(filepath.Base(path), bcName); !ok {
			return sweepPoint{}, false
		}
	}

	// non-converged rows reduce to zero stiffness, which the log axis
	// cannot plot
	value := Stiffness(test, loads) / mass
	if !(value > 0) {
		log.WithField("path", path).Debug("skipping non-positive stiffness sample")
		return sweepPoint{}, false
	}
	return sweepPoint{
		family: meta.Family,
		pt:     Point{X: loads.Length / meta.InitialHeight, Y: value},
	}, true
}

func readMassTables(massDataDir string) (map[Family]results.MassTable, error) {
	out := make(map[Family]results.MassTable, 3)
	for _, fam := range []Family{FamilyPET, FamilyKresling, FamilyHERDS} {
		path := filepath.Join(massDataDir, string(fam), "extension_ratio_sweep", "mass.csv")
		table, err := results.ReadMassTable(path)
		if err != nil {
			// a family can be absent from a partial data tree
			if os.IsNotExist(errors.Cause(err)) {
				log.WithField("family", fam).Warn("no mass table, family skipped in normalized figures")
				continue
			}
			return nil, err
		}
		out[fam] = table
	}
	return out, nil
}
