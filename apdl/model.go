package apdl

import (
	"sort"

	"github.com/deploylab/trussim/geometry"
)

// Material holds the linear-elastic properties written to the deck's
// preprocessor block. Units follow the model files (mm, N, tonne).
type Material struct {
	E   float64 // Young's modulus
	Nu  float64 // Poisson's ratio
	Rho float64 // density
}

// NominalSteel is the default material when no modulus override is given.
var NominalSteel = Material{E: 2.1e5, Nu: 0.3, Rho: 7800.0}

// MeshOptions controls element selection and mesh density for the beam
// lattice.
type MeshOptions struct {
	ElementType      string // beam element, normally BEAM188
	NDiv             int    // line divisions per link
	NumCrossElements int    // cells across the rectangular section
	Warp             bool   // enable warping DOF on the beam element
}

// WriteMaterial emits the /PREP7 material block.
func WriteMaterial(d *Deck, mat Material) {
	d.Cmd("/PREP7")
	d.Cmd("MP", "EX", 1, mat.E)
	d.Cmd("MP", "DENS", 1, mat.Rho)
	d.Cmd("MP", "NUXY", 1, mat.Nu)
}

// WriteBeamModel emits the geometry, section, and meshing commands for a
// scaled model: rectangular beam sections, keypoint/line pairs per link,
// line meshing, node and keypoint merging, and the mechanism specific end
// treatment that gives the boundary conditions something solid to clamp.
func WriteBeamModel(d *Deck, m *geometry.Model, mech geometry.MechType, opts MeshOptions) {
	for i, s := range m.Sections() {
		d.Cmd("SECTYPE", i+1, "BEAM", "RECT")
		d.Cmd("SECDATA", s.Width, s.Height, opts.NumCrossElements, opts.NumCrossElements)
	}

	if opts.Warp {
		d.Cmd("ET", 1, opts.ElementType, 1, 0, 3)
	} else {
		d.Cmd("ET", 1, opts.ElementType, 0, 0, 3)
	}

	for i, l := range m.Links {
		k1, k2 := 2*i+1, 2*i+2
		d.Cmd("K", k1, l.X1, l.Y1, l.Z1)
		d.Cmd("K", k2, l.X2, l.Y2, l.Z2)
		d.Cmd("L", k1, k2)
	}

	d.Cmd("LSEL", "ALL")
	d.Cmd("LATT", 1, nil, 1, nil, nil, nil, 1)
	d.Cmd("LESIZE", "ALL", nil, nil, opts.NDiv)
	d.Cmd("LMESH", "ALL")

	d.Cmd("NSEL", "ALL")
	d.Cmd("NUMMRG", "NODE")
	d.Cmd("NUMMRG", "KP")
	d.Cmd("ENDRELEASE")

	b := geometry.FindBounds(m)
	switch mech {
	case geometry.Kresling:
		writeKreslingEnds(d, b.YMin, b.YMax)
	case geometry.PET, geometry.Scissor:
		writeTrussEnds(d, m, mech, b.ZMax, b.ZMin)
	}
}

// writeKreslingEnds caps the polygonal ends of a Kresling tube with short
// extruded volumes. The end lines form a closed loop, so AL on the
// selection yields one area per end; the area number is recovered with
// *GET since it is not known at deck generation time.
func writeKreslingEnds(d *Deck, ymin, ymax float64) {
	d.Cmd("LSEL", "S", "LOC", "Y", ymin)
	d.Cmd("AL", "ALL")
	d.Raw("*GET,ENDCAP,AREA,0,NUM,MAX")
	d.Cmd("VEXT", "ENDCAP", nil, nil, 0, -3.0, 0)

	d.Cmd("LSEL", "S", "LOC", "Y", ymax)
	d.Cmd("AL", "ALL")
	d.Raw("*GET,ENDCAP,AREA,0,NUM,MAX")
	d.Cmd("VEXT", "ENDCAP", nil, nil, 0, 3.0, 0)

	meshEndVolumes(d, "SOLID187")
}

// writeTrussEnds attaches solid blocks spanning the endpoint keypoints at
// each end of a PET or scissor model.
func writeTrussEnds(d *Deck, m *geometry.Model, mech geometry.MechType, zmax, zmin float64) {
	minY, maxY := geometry.Endpoints(m, mech)
	writeBlocks(d, minY, zmax, zmin)
	writeBlocks(d, maxY, zmax, zmin)
	meshEndVolumes(d, "SOLID185")
}

func meshEndVolumes(d *Deck, elemType string) {
	d.Cmd("VSEL", "ALL")
	d.Cmd("ET", 2, elemType)
	d.Cmd("VATT", 1, nil, 2)
	d.Cmd("VMESH", "ALL")

	d.Cmd("NSEL", "ALL")
	d.Cmd("NUMMRG", "NODE")
}

// writeBlocks emits BLC4 primitives spanning consecutive endpoint pairs
// sorted along X. The block height is taken from the first pair. A planar
// model (zero Z extent) instead gets a single pair of blocks of depth 3
// straddling the model plane.
func writeBlocks(d *Deck, points [][3]float64, zmax, zmin float64) {
	sorted := make([][3]float64, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i][0] < sorted[j][0] })

	var height float64
	for i := 0; i < len(sorted)-1; i++ {
		x1, y1 := sorted[i][0], sorted[i][1]
		x2, y2 := sorted[i+1][0], sorted[i+1][1]
		if i == 0 {
			height = y2 - y1
			if height < 0 {
				height = -height
			}
			if height == 0 {
				height = 3.0
			}
		}

		width := x2 - x1
		depth := zmax - zmin
		ylo := y1
		if y2 < ylo {
			ylo = y2
		}

		if depth == 0 {
			depth = 3.0
			direction := 1.0
			if y1 < 0 {
				direction = -1.0
			}
			d.Cmd("BLC4", x1, ylo, width, direction*height, depth)
			d.Cmd("BLC4", x1, ylo, width, direction*height, -depth)
			return
		}

		d.Cmd("BLC4", x1, ylo, width, height, depth)
	}
}
