package figures

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/deploylab/trussim/results"
)

const (
	// fixed member width of the short-link scissor in the aspect-ratio
	// study, and the unscaled l1 member length
	memberWidth    = 1.8
	baseLinkLength = 34.32
)

// AspectRatioConfig points the aspect-ratio-scaling figure at its result
// and plot directories.
type AspectRatioConfig struct {
	ResultsDir string
	PlotsDir   string
	Workers    int
}

// AspectRatio builds the member aspect-ratio scaling figure: normalized
// flexural modulus against the l1 member aspect ratio for the PET family.
func AspectRatio(ctx context.Context, cfg AspectRatioConfig) (string, error) {
	paths, err := filepath.Glob(filepath.Join(cfg.ResultsDir, "*_cant_x.csv"))
	if err != nil {
		return "", errors.Wrap(err, "glob aspect ratio results")
	}
	if len(paths) == 0 {
		return "", errors.Errorf("no *_cant_x.csv results under %s", cfg.ResultsDir)
	}

	pet, err := Aggregate(ctx, paths, cfg.Workers, processAspectFile)
	if err != nil {
		return "", err
	}
	if len(pet) == 0 {
		return "", errors.New("aspect ratio figure has no PET samples")
	}
	sortByX(pet)

	for i := range pet {
		pet[i].Y /= SolidBeamEI
	}
	petAtEnd := pet[len(pet)-1].Y

	p := newFigure("Short-Link Scissor Member Aspect Ratio", "Normalized Flexural Modulus")
	if err := addLine(p, "PET", pet, PETColor, 4); err != nil {
		return "", err
	}
	solid := []Point{{X: pet[0].X, Y: 1.0}, {X: pet[len(pet)-1].X, Y: 1.0}}
	if err := addDashedLine(p, "Solid Beam", solid, SolidBeamColor); err != nil {
		return "", err
	}

	out := filepath.Join(cfg.PlotsDir, fmt.Sprintf(
		"%s_DL_vs_EI_comp_imp_pct_%.2f.svg",
		time.Now().Format("20060102_150405"), petAtEnd))
	return out, savePlot(p, out)
}

func processAspectFile(_ context.Context, path string) (Point, bool, error) {
	if !strings.Contains(path, "l1") {
		return Point{}, false, nil
	}
	recs, err := results.ReadCSV(path)
	if err != nil {
		return Point{}, false, err
	}
	loads, err := LastLoads(recs)
	if err != nil {
		return Point{}, false, errors.Wrap(err, path)
	}
	scale, err := MemberScale(filepath.Base(path))
	if err != nil {
		return Point{}, false, err
	}
	aspect := baseLinkLength * scale / memberWidth
	return Point{X: aspect, Y: FlexuralModulus(loads)}, true, nil
}
