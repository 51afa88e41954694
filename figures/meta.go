package figures

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Family is the mechanism family a result file belongs to, recovered from
// its path the same way the rest of the result tree encodes it.
type Family string

const (
	FamilyPET      Family = "pets"
	FamilyKresling Family = "kresling"
	FamilyHERDS    Family = "herds"
)

var (
	alphaRe     = regexp.MustCompile(`alpha_([0-9.]+)_`)
	linkRe      = regexp.MustCompile(`t_([0-9.]+)_`)
	thicknessRe = regexp.MustCompile(`thickness_([0-9.]+)_`)
	cellsRe     = regexp.MustCompile(`cells_([0-9.]+)_`)
	scaleRe     = regexp.MustCompile(`scale_([0-9.]+)_`)
)

func matchFloat(re *regexp.Regexp, s string) (float64, error) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, errors.Errorf("no %s match in %q", re.String(), s)
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(m[1], "."), 64)
	return v, errors.Wrapf(err, "parse %s in %q", re.String(), s)
}

// Alpha extracts the scissor link angle parameter from a filename.
func Alpha(name string) (float64, error) { return matchFloat(alphaRe, name) }

// LinkThickness extracts the t_ parameter (PET and HERDS filenames).
func LinkThickness(name string) (float64, error) { return matchFloat(linkRe, name) }

// WallThickness extracts the thickness_ parameter (Kresling filenames).
func WallThickness(name string) (float64, error) { return matchFloat(thicknessRe, name) }

// Cells extracts the cell count parameter.
func Cells(name string) (float64, error) { return matchFloat(cellsRe, name) }

// MemberScale extracts the scale_ parameter (aspect-ratio sweep filenames).
func MemberScale(name string) (float64, error) { return matchFloat(scaleRe, name) }

// FileMeta is the per-family metadata needed to place a result file on an
// extension-ratio axis.
type FileMeta struct {
	Family        Family
	InitialHeight float64
	// Kresling and HERDS runs use the nodal boundary variants, so their
	// result files carry a _kres suffix on the test name.
	TestSuffix string
}

// ClassifyResult determines the family and stowed height of a result file.
// HERDS models stow at 4t per cell, Kresling tubes (always three cells) at
// 2t per cell, PET trusses at 2t per cell.
func ClassifyResult(path string) (FileMeta, error) {
	base := filepath.Base(path)
	switch {
	case strings.Contains(path, "HERDS") || strings.Contains(path, "herds"):
		t, err := LinkThickness(base)
		if err != nil {
			return FileMeta{}, err
		}
		cells, err := Cells(base)
		if err != nil {
			return FileMeta{}, err
		}
		return FileMeta{Family: FamilyHERDS, InitialHeight: cells * 4.0 * t, TestSuffix: "_kres"}, nil

	case strings.Contains(path, "kres") || strings.Contains(path, "radius"):
		t, err := WallThickness(base)
		if err != nil {
			return FileMeta{}, err
		}
		return FileMeta{Family: FamilyKresling, InitialHeight: 3.0 * 2.0 * t, TestSuffix: "_kres"}, nil

	case strings.Contains(path, "pet") || strings.Contains(path, "width"):
		t, err := LinkThickness(base)
		if err != nil {
			return FileMeta{}, err
		}
		cells, err := Cells(base)
		if err != nil {
			return FileMeta{}, err
		}
		return FileMeta{Family: FamilyPET, InitialHeight: cells * 2.0 * t}, nil
	}
	return FileMeta{}, errors.Errorf("cannot classify result file %s", path)
}
