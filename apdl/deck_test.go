package apdl

import (
	"strings"
	"testing"

	"github.com/deploylab/trussim/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckFormatting(t *testing.T) {
	d := NewDeck()
	d.Cmd("MP", "EX", 1, 962.8)
	d.Cmd("LATT", 1, nil, 1, nil, nil, nil, 1)
	d.Cmd("LESIZE", "ALL", nil, nil, 10)
	d.Cmd("NSEL", "ALL", nil, nil)
	d.Raw("*GET,CNVG,ACTIVE,0,SOLU,CNVG")

	lines := strings.Split(strings.TrimSpace(d.String()), "\n")
	require.Equal(t, 5, len(lines))
	assert.Equal(t, "MP,EX,1,962.8", lines[0])
	assert.Equal(t, "LATT,1,,1,,,,1", lines[1])
	assert.Equal(t, "LESIZE,ALL,,,10", lines[2])
	// trailing empty fields are dropped
	assert.Equal(t, "NSEL,ALL", lines[3])
	assert.Equal(t, "*GET,CNVG,ACTIVE,0,SOLU,CNVG", lines[4])
}

func TestWriteMaterial(t *testing.T) {
	d := NewDeck()
	WriteMaterial(d, Material{E: 962.8, Nu: 0.3, Rho: 7800})
	s := d.String()
	assert.Contains(t, s, "/PREP7\n")
	assert.Contains(t, s, "MP,EX,1,962.8\n")
	assert.Contains(t, s, "MP,DENS,1,7800\n")
	assert.Contains(t, s, "MP,NUXY,1,0.3\n")
}

// a planar two-link scissor cell, two distinct sections
func scissorModel() *geometry.Model {
	return &geometry.Model{Links: []geometry.Link{
		{X1: 0, Y1: 0, X2: 10, Y2: 20, Width: 1.8, Height: 0.4},
		{X1: 10, Y1: 0, X2: 0, Y2: 20, Width: 0.9, Height: 0.4},
	}}
}

func TestWriteBeamModel(t *testing.T) {
	d := NewDeck()
	WriteBeamModel(d, scissorModel(), geometry.Scissor, MeshOptions{
		ElementType:      "BEAM188",
		NDiv:             10,
		NumCrossElements: 3,
	})
	s := d.String()

	assert.Contains(t, s, "SECTYPE,1,BEAM,RECT\n")
	assert.Contains(t, s, "SECDATA,1.8,0.4,3,3\n")
	assert.Contains(t, s, "SECTYPE,2,BEAM,RECT\n")
	assert.Contains(t, s, "SECDATA,0.9,0.4,3,3\n")
	assert.Contains(t, s, "ET,1,BEAM188,0,0,3\n")

	assert.Contains(t, s, "K,1,0,0,0\n")
	assert.Contains(t, s, "K,2,10,20,0\n")
	assert.Contains(t, s, "L,1,2\n")
	assert.Contains(t, s, "K,3,10,0,0\n")
	assert.Contains(t, s, "L,3,4\n")

	assert.Contains(t, s, "LESIZE,ALL,,,10\n")
	assert.Contains(t, s, "LMESH,ALL\n")
	assert.Contains(t, s, "NUMMRG,NODE\n")
	assert.Contains(t, s, "NUMMRG,KP\n")
	assert.Contains(t, s, "ENDRELEASE\n")

	// planar model: end blocks come in straddling pairs of depth 3
	assert.Contains(t, s, "BLC4,0,0,10,3,3\n")
	assert.Contains(t, s, "BLC4,0,0,10,3,-3\n")
	assert.Contains(t, s, "ET,2,SOLID185\n")
	assert.Contains(t, s, "VMESH,ALL\n")
}

func TestWriteBeamModelWarp(t *testing.T) {
	d := NewDeck()
	WriteBeamModel(d, scissorModel(), geometry.Scissor, MeshOptions{
		ElementType: "BEAM188", NDiv: 10, NumCrossElements: 3, Warp: true,
	})
	assert.Contains(t, d.String(), "ET,1,BEAM188,1,0,3\n")
}

func TestWriteKreslingEnds(t *testing.T) {
	m := &geometry.Model{Links: []geometry.Link{
		{X1: 0, Y1: 0, Z1: 1, X2: 1, Y2: 30, Z2: 0, Width: 1, Height: 1},
		{X1: 1, Y1: 0, Z1: 0, X2: 0, Y2: 30, Z2: 1, Width: 1, Height: 1},
	}}
	d := NewDeck()
	WriteBeamModel(d, m, geometry.Kresling, MeshOptions{ElementType: "BEAM188", NDiv: 10, NumCrossElements: 3})
	s := d.String()

	assert.Contains(t, s, "LSEL,S,LOC,Y,0\n")
	assert.Contains(t, s, "LSEL,S,LOC,Y,30\n")
	assert.Contains(t, s, "AL,ALL\n")
	assert.Contains(t, s, "*GET,ENDCAP,AREA,0,NUM,MAX\n")
	assert.Contains(t, s, "VEXT,ENDCAP,,,0,-3,0\n")
	assert.Contains(t, s, "VEXT,ENDCAP,,,0,3,0\n")
	assert.Contains(t, s, "ET,2,SOLID187\n")
}

func TestWriteBoundaryNodal(t *testing.T) {
	b := geometry.Bounds{XMin: -5, XMax: 5, YMin: 0, YMax: 120, YMin2: 3, YMax2: 117}

	{ // compression clamps ymin, drives ymax down
		d := NewDeck()
		WriteBoundary(d, Boundary{Type: Compression, Nodal: true}, b, 1.2)
		s := d.String()
		assert.Contains(t, s, "/SOLU\n")
		assert.Contains(t, s, "ANTYPE,STATIC\n")
		assert.Contains(t, s, "SELTOL,1e-08\n")
		assert.Contains(t, s, "NSEL,S,LOC,Y,0,0\n")
		assert.Contains(t, s, "CM,fixed,NODE\n")
		assert.Contains(t, s, "NSEL,S,LOC,Y,120,120\n")
		assert.Contains(t, s, "CM,driven,NODE\n")
		assert.Contains(t, s, "D,ALL,UY,-1.2\n")
		assert.Contains(t, s, "ALLSEL\n")
	}
	{ // cantilever drives the free corner at ymin, xmax
		d := NewDeck()
		WriteBoundary(d, Boundary{Type: CantX, Nodal: true}, b, 2.0)
		s := d.String()
		assert.Contains(t, s, "NSEL,S,LOC,Y,120,120\n") // fixed end
		assert.Contains(t, s, "NSEL,S,LOC,X,5,5\n")
		assert.Contains(t, s, "NSEL,R,LOC,Y,0,0\n")
		assert.Contains(t, s, "D,ALL,UX,-2\n")
		assert.NotContains(t, s, "D,ALL,UY")
	}
	{ // torsion locks every fixed DOF and rotates the driven end
		d := NewDeck()
		WriteBoundary(d, Boundary{Type: Torsion, Nodal: true}, b, 0.0628)
		s := d.String()
		assert.Contains(t, s, "D,ALL,ROTY,0.0628\n")
		assert.Contains(t, s, "D,ALL,ROTZ,0\n")
	}
}

func TestWriteBoundaryAreas(t *testing.T) {
	b := geometry.Bounds{XMax: 5, YMin: 0, YMax: 120, YMin2: 3, YMax2: 117}

	{
		d := NewDeck()
		WriteBoundary(d, Boundary{Type: Tension}, b, 1.2)
		s := d.String()
		assert.Contains(t, s, "ASEL,S,LOC,Y,0,3\n")
		assert.Contains(t, s, "CM,fixed,AREA\n")
		assert.Contains(t, s, "ASEL,S,LOC,Y,117,120\n")
		assert.Contains(t, s, "CM,driven,AREA\n")
		assert.Contains(t, s, "DA,ALL,UY,1.2\n")
	}
	{ // area torsion drives nodes in the top slab
		d := NewDeck()
		WriteBoundary(d, Boundary{Type: Torsion}, b, 0.0628)
		s := d.String()
		assert.Contains(t, s, "ASEL,S,LOC,Y,0,3\n")
		assert.Contains(t, s, "NSEL,S,LOC,Y,117,120\n")
		assert.Contains(t, s, "D,ALL,ROTY,0.0628\n")
	}
	{ // area cantilever drives the corner nodes
		d := NewDeck()
		WriteBoundary(d, Boundary{Type: CantZ}, b, 2.0)
		s := d.String()
		assert.Contains(t, s, "NSEL,S,LOC,X,5,5\n")
		assert.Contains(t, s, "D,ALL,UZ,-2\n")
	}
}

func TestParseBoundary(t *testing.T) {
	bc, err := ParseBoundary("cant_x_kres")
	require.NoError(t, err)
	assert.Equal(t, CantX, bc.Type)
	assert.True(t, bc.Nodal)
	assert.Equal(t, "cant_x_kres", bc.Name())

	bc, err = ParseBoundary("compression")
	require.NoError(t, err)
	assert.Equal(t, Compression, bc.Type)
	assert.False(t, bc.Nodal)

	_, err = ParseBoundary("shear")
	assert.Error(t, err)
}

func TestSolveAndPostBlocks(t *testing.T) {
	d := NewDeck()
	WriteSolve(d, 10)
	WritePost(d, 1.2, 120.0)
	s := d.String()

	assert.Contains(t, s, "NLGEOM,ON\n")
	assert.Contains(t, s, "NSUBST,10,100,10\n")
	assert.Contains(t, s, "NEQIT,1000\n")
	assert.Contains(t, s, "OUTRES,ALL,LAST\n")
	assert.Contains(t, s, "SOLVE\n")

	assert.Contains(t, s, "/POST1\n")
	assert.Contains(t, s, "SET,LAST\n")
	assert.Contains(t, s, "CMSEL,S,driven\n")
	assert.Contains(t, s, "*GET,CNVG,ACTIVE,0,SOLU,CNVG\n")
	assert.Contains(t, s, "FSUM\n")
	assert.Contains(t, s, "*GET,RFX,FSUM,0,ITEM,FX\n")
	assert.Contains(t, s, "*GET,RMZ,FSUM,0,ITEM,MZ\n")
	assert.Contains(t, s, "DISP=1.2\n")
	assert.Contains(t, s, "GLEN=120\n")
	assert.Contains(t, s, "*CFOPEN,reactions,txt\n")
	assert.Contains(t, s, "*VWRITE,CNVG,DISP,RFX,RFY,RFZ,RMX,RMY,RMZ,GLEN\n")
}
