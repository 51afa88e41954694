package apdl

import (
	"strings"

	"github.com/deploylab/trussim/geometry"
	"github.com/pkg/errors"
)

// BCType is one of the five load cases applied to a model.
type BCType string

const (
	Compression BCType = "compression"
	Tension     BCType = "tension"
	CantX       BCType = "cant_x"
	CantZ       BCType = "cant_z"
	Torsion     BCType = "torsion"
)

// Boundary is a load case plus its application mode. Nodal boundaries (the
// "_kres" variants used for Kresling and HERDS tubes) constrain node sets
// selected at the extreme Y planes; the default mode constrains the end
// block areas instead.
type Boundary struct {
	Type  BCType
	Nodal bool
}

// ParseBoundary resolves a boundary condition name as given on the command
// line, e.g. "compression" or "cant_x_kres".
func ParseBoundary(name string) (Boundary, error) {
	bc := Boundary{}
	s := strings.ToLower(strings.TrimSpace(name))
	if strings.HasSuffix(s, "_kres") {
		bc.Nodal = true
		s = strings.TrimSuffix(s, "_kres")
	}
	switch BCType(s) {
	case Compression, Tension, CantX, CantZ, Torsion:
		bc.Type = BCType(s)
		return bc, nil
	}
	return Boundary{}, errors.Errorf("unknown boundary condition %q", name)
}

// Name returns the command line spelling of the boundary condition.
func (bc Boundary) Name() string {
	if bc.Nodal {
		return string(bc.Type) + "_kres"
	}
	return string(bc.Type)
}

// Constraint is a single DOF constraint. Constraints are kept as an
// ordered slice so decks are reproducible.
type Constraint struct {
	Label string
	Value float64
}

func drivenConstraints(t BCType, d float64) []Constraint {
	switch t {
	case Compression:
		return []Constraint{{"UX", 0}, {"UY", -d}, {"UZ", 0}}
	case Tension:
		return []Constraint{{"UX", 0}, {"UY", d}, {"UZ", 0}}
	case CantX:
		return []Constraint{{"UX", -d}, {"UZ", 0}}
	case CantZ:
		return []Constraint{{"UZ", -d}, {"UX", 0}}
	case Torsion:
		return []Constraint{{"UX", 0}, {"UY", 0}, {"UZ", 0}, {"ROTX", 0}, {"ROTY", d}, {"ROTZ", 0}}
	}
	return nil
}

func fixedConstraints(t BCType) []Constraint {
	if t == Torsion {
		return []Constraint{{"UX", 0}, {"UY", 0}, {"UZ", 0}, {"ROTX", 0}, {"ROTY", 0}, {"ROTZ", 0}}
	}
	return []Constraint{{"UX", 0}, {"UY", 0}, {"UZ", 0}}
}

type span struct {
	lo, hi float64
}

// WriteBoundary emits the /SOLU block that selects the fixed and driven
// regions, names them as components, and applies the displacement
// constraints. disp is the absolute driven displacement.
func WriteBoundary(d *Deck, bc Boundary, b geometry.Bounds, disp float64) {
	d.Cmd("/SOLU")
	d.Cmd("ANTYPE", "STATIC")

	driven := drivenConstraints(bc.Type, disp)
	fixed := fixedConstraints(bc.Type)

	if bc.Nodal {
		switch bc.Type {
		case Compression, Tension, Torsion:
			selectNodes(d, "fixed", span{b.YMin, b.YMin}, nil, fixed)
			selectNodes(d, "driven", span{b.YMax, b.YMax}, nil, driven)
		case CantX, CantZ:
			selectNodes(d, "fixed", span{b.YMax, b.YMax}, nil, fixed)
			selectNodes(d, "driven", span{b.YMin, b.YMin}, &span{b.XMax, b.XMax}, driven)
		}
	} else {
		switch bc.Type {
		case Compression, Tension:
			selectAreas(d, "fixed", span{b.YMin, b.YMin2}, fixed)
			selectAreas(d, "driven", span{b.YMax2, b.YMax}, driven)
		case CantX, CantZ:
			selectAreas(d, "fixed", span{b.YMin, b.YMin2}, fixed)
			selectNodes(d, "driven", span{b.YMax, b.YMax}, &span{b.XMax, b.XMax}, driven)
		case Torsion:
			selectAreas(d, "fixed", span{b.YMin, b.YMin2}, fixed)
			selectNodes(d, "driven", span{b.YMax2, b.YMax}, nil, driven)
		}
	}

	d.Cmd("ALLSEL")
}

// selectNodes selects nodes by coordinate range, names the selection, and
// applies constraints. A tight selection tolerance keeps the solver from
// grabbing mid-span nodes that sit numerically close to an end plane.
func selectNodes(d *Deck, name string, yRange span, xRange *span, constraints []Constraint) {
	d.Cmd("SELTOL", 1e-8)
	if xRange != nil {
		d.Cmd("NSEL", "S", "LOC", "X", xRange.lo, xRange.hi)
		d.Cmd("NSEL", "R", "LOC", "Y", yRange.lo, yRange.hi)
	} else {
		d.Cmd("NSEL", "S", "LOC", "Y", yRange.lo, yRange.hi)
	}
	d.Cmd("CM", name, "NODE")
	for _, c := range constraints {
		d.Cmd("D", "ALL", c.Label, c.Value)
	}
}

func selectAreas(d *Deck, name string, yRange span, constraints []Constraint) {
	d.Cmd("ASEL", "S", "LOC", "Y", yRange.lo, yRange.hi)
	d.Cmd("CM", name, "AREA")
	for _, c := range constraints {
		d.Cmd("DA", "ALL", c.Label, c.Value)
	}
}
