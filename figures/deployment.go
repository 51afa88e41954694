package figures

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/deploylab/trussim/results"
)

// DeploymentConfig points the deployment-test figure at its result and
// plot directories.
type DeploymentConfig struct {
	ResultsDir string // cant_x result tables from the deployment campaign
	PlotsDir   string
	Workers    int
}

type deploymentPoint struct {
	series string // pet, short, long
	ei     Point
}

// Deployment builds the deployment-test figure: normalized flexural
// modulus against extension ratio for the PET truss and the short- and
// long-link scissors, with the solid-beam reference line. Returns the path
// of the written SVG.
func Deployment(ctx context.Context, cfg DeploymentConfig) (string, error) {
	paths, err := filepath.Glob(filepath.Join(cfg.ResultsDir, "*_cant_x.csv"))
	if err != nil {
		return "", errors.Wrap(err, "glob deployment results")
	}
	if len(paths) == 0 {
		return "", errors.Errorf("no *_cant_x.csv results under %s", cfg.ResultsDir)
	}

	points, err := Aggregate(ctx, paths, cfg.Workers, processDeploymentFile)
	if err != nil {
		return "", err
	}

	var pet, short, long []Point
	for _, dp := range points {
		switch dp.series {
		case "pet":
			pet = append(pet, dp.ei)
		case "short":
			short = append(short, dp.ei)
		case "long":
			long = append(long, dp.ei)
		}
	}
	sortByX(pet)
	sortByX(short)
	sortByX(long)
	if len(pet) == 0 || len(short) == 0 || len(long) == 0 {
		return "", errors.New("deployment figure needs pet, short and long series")
	}

	// normalize: x by the stowed length, y by the solid-beam modulus
	normalize := func(pts []Point) []Point {
		out := make([]Point, len(pts))
		x0 := pts[0].X
		for i, p := range pts {
			out[i] = Point{X: p.X / x0, Y: p.Y / SolidBeamEI}
		}
		return out
	}
	pet, short, long = normalize(pet), normalize(short), normalize(long)

	shortPct := (short[len(short)-1].Y - 1.0) * 100.0
	longAt100 := long[len(long)-1].Y
	longPct := (-longAt100 + SolidBeamEI) / longAt100 * 100.0
	log.WithFields(log.Fields{
		"short_improvement_pct": shortPct,
		"long_improvement_pct":  longPct,
	}).Info("deployment figure improvements at full extension")

	p := newFigure("Extension Ratio", "Normalized Flexural Modulus")
	if err := addLine(p, "PET", pet, PETColor, 4); err != nil {
		return "", err
	}
	if err := addLine(p, "Short-Link Scissor", short, KreslingColor, 4); err != nil {
		return "", err
	}
	if err := addLine(p, "Long-Link Scissor", long, HERDSColor, 4); err != nil {
		return "", err
	}
	solid := []Point{{X: pet[0].X, Y: 1.0}, {X: pet[len(pet)-1].X, Y: 1.0}}
	if err := addDashedLine(p, "Solid Beam", solid, SolidBeamColor); err != nil {
		return "", err
	}

	out := filepath.Join(cfg.PlotsDir, fmt.Sprintf(
		"%s_DL_vs_EI_comp_srt_imp_pct_%.2f_lng_%.2f.svg",
		time.Now().Format("20060102_150405"), shortPct, longPct))
	return out, savePlot(p, out)
}

// processDeploymentFile extracts one (length, EI) sample from a cant_x
// result table and assigns it to a series: PET models carry "l1" in the
// filename, six-cell scissors with alpha in [1.07, 2.97] are the short
// family, remaining files with alpha <= 2.96 the long family; everything
// else is skipped.
func processDeploymentFile(_ context.Context, path string) (deploymentPoint, bool, error) {
	recs, err := results.ReadCSV(path)
	if err != nil {
		return deploymentPoint{}, false, err
	}
	loads, err := LastLoads(recs)
	if err != nil {
		return deploymentPoint{}, false, errors.Wrap(err, path)
	}
	alpha, err := Alpha(filepath.Base(path))
	if err != nil {
		return deploymentPoint{}, false, err
	}

	pt := Point{X: loads.Length / 1000.0, Y: FlexuralModulus(loads)}
	switch {
	case strings.Contains(path, "l1"):
		return deploymentPoint{series: "pet", ei: pt}, true, nil
	case strings.Contains(path, "cells_6") && alpha >= 1.07 && alpha <= 2.97:
		return deploymentPoint{series: "short", ei: pt}, true, nil
	case alpha <= 2.96:
		return deploymentPoint{series: "long", ei: pt}, true, nil
	}
	return deploymentPoint{}, false, nil
}
