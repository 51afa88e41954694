package geometry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestModel(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestReadModelCSV(t *testing.T) {
	path := writeTestModel(t, `x1,y1,z1,x2,y2,z2,width,height
0,0,0,1,2,0,1.8,0.4
1,2,0,2,0,0,1.8,0.4
0,0,0,0,4,0,0.9,0.4
`)
	m, err := ReadModelCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 3, len(m.Links))
	assert.Equal(t, Link{X2: 1, Y2: 2, Width: 1.8, Height: 0.4}, m.Links[0])

	{ // Extra columns and reordered headers are accepted
		path = writeTestModel(t, `width,height,x1,y1,z1,x2,y2,z2,label
1,2,0,0,0,1,1,1,linkA
`)
		m, err = ReadModelCSV(path)
		require.NoError(t, err)
		assert.Equal(t, 1.0, m.Links[0].Width)
		assert.Equal(t, 1.0, m.Links[0].X2)
	}
	{ // Missing column is an error
		path = writeTestModel(t, "x1,y1,z1,x2,y2,z2,width\n0,0,0,1,1,1,1\n")
		_, err = ReadModelCSV(path)
		assert.Error(t, err)
	}
	{ // Header only is an error
		path = writeTestModel(t, "x1,y1,z1,x2,y2,z2,width,height\n")
		_, err = ReadModelCSV(path)
		assert.Error(t, err)
	}
}

func TestScaleAndSections(t *testing.T) {
	m := &Model{Links: []Link{
		{X1: 1, Y1: 2, Z1: 3, X2: 4, Y2: 5, Z2: 6, Width: 2, Height: 1},
		{X2: 1, Width: 2, Height: 1},
		{X2: 2, Width: 4, Height: 3},
	}}
	s := m.Scale(10, 0.5)
	assert.Equal(t, 10.0, s.Links[0].X1)
	assert.Equal(t, 60.0, s.Links[0].Z2)
	assert.Equal(t, 1.0, s.Links[0].Width)
	// original model untouched
	assert.Equal(t, 2.0, m.Links[0].Width)

	secs := s.Sections()
	require.Equal(t, 2, len(secs))
	assert.Equal(t, Section{Width: 1, Height: 0.5}, secs[0])
	assert.Equal(t, Section{Width: 2, Height: 1.5}, secs[1])
}

func TestFindBounds(t *testing.T) {
	m := &Model{Links: []Link{
		{X1: -1, Y1: 0, Z1: 0, X2: 1, Y2: 10, Z2: 2},
		{X1: 0, Y1: 1, Z1: -2, X2: 0, Y2: 9, Z2: 0},
	}}
	b := FindBounds(m)
	assert.Equal(t, -1.0, b.XMin)
	assert.Equal(t, 1.0, b.XMax)
	assert.Equal(t, 0.0, b.YMin)
	assert.Equal(t, 10.0, b.YMax)
	assert.Equal(t, -2.0, b.ZMin)
	assert.Equal(t, 2.0, b.ZMax)
	assert.Equal(t, 1.0, b.YMin2)
	assert.Equal(t, 9.0, b.YMax2)

	{ // Degenerate: single Y value collapses the second bounds
		m := &Model{Links: []Link{{X1: 0, Y1: 5, X2: 1, Y2: 5}}}
		b := FindBounds(m)
		assert.Equal(t, 5.0, b.YMin2)
		assert.Equal(t, 5.0, b.YMax2)
	}
}

func TestGaugeLengthAndDisplacement(t *testing.T) {
	b := Bounds{YMin: 0, YMax: 100, YMin2: 10, YMax2: 90}
	assert.Equal(t, 100.0, GaugeLength(Kresling, b))
	assert.Equal(t, 100.0, GaugeLength(HERDS, b))
	assert.Equal(t, 80.0, GaugeLength(PET, b))
	assert.Equal(t, 80.0, GaugeLength(Scissor, b))

	assert.InDelta(t, 1.0, Displacement(Kresling, b, 1.0), 1e-12)
	assert.InDelta(t, 0.8, Displacement(PET, b, 1.0), 1e-12)
}

func TestEndpoints(t *testing.T) {
	// Ladder of keypoints along Y with duplicated ends, as produced by
	// shared link endpoints.
	m := &Model{Links: []Link{
		{X1: 0, Y1: 0, X2: 1, Y2: 0},
		{X1: 1, Y1: 0, X2: 2, Y2: 0},
		{X1: 2, Y1: 0, X2: 3, Y2: 0},
		{X1: 4, Y1: 0, X2: 5, Y2: 0},
		{X1: 0, Y1: 50, X2: 1, Y2: 50},
		{X1: 1, Y1: 50, X2: 2, Y2: 50},
	}}
	minY, maxY := Endpoints(m, PET)
	assert.Equal(t, 5, len(minY))
	assert.Equal(t, 3, len(maxY))
	for _, p := range maxY {
		assert.Equal(t, 50.0, p[1])
	}

	minY, maxY = Endpoints(m, Scissor)
	assert.Equal(t, 2, len(minY))
	assert.Equal(t, 2, len(maxY))
}

func TestNewMechType(t *testing.T) {
	mt, err := NewMechType("pet")
	assert.NoError(t, err)
	assert.Equal(t, PET, mt)
	mt, err = NewMechType("KRESLING")
	assert.NoError(t, err)
	assert.Equal(t, Kresling, mt)
	_, err = NewMechType("origami")
	assert.Error(t, err)
}
