package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploylab/trussim/apdl"
	"github.com/deploylab/trussim/geometry"
)

func TestRunParams(t *testing.T) {
	require.NoError(t, RunCmd.ParseFlags([]string{
		"-m", "PET",
		"--percent-displacement", "2.5",
		"--fixed-displacement", "0.0628",
		"--scale", "5.0",
		"--warp",
		"--timeout", "5m",
	}))

	p, timeout, err := runParams(RunCmd, []string{"alpha_1.5_cells_6.csv", "data/models/pets/deployment_test", "cant_x"})
	require.NoError(t, err)
	assert.Equal(t, geometry.PET, p.Mech)
	assert.Equal(t, apdl.Boundary{Type: apdl.CantX}, p.Boundary)
	assert.Equal(t, "alpha_1.5_cells_6.csv", p.ModelFile)
	assert.Equal(t, 2.5, p.PercentDisplacement)
	require.NotNil(t, p.FixedDisplacement)
	assert.Equal(t, 0.0628, *p.FixedDisplacement)
	assert.Equal(t, 5.0, p.Scale)
	assert.True(t, p.Warp)
	// untouched flags keep the tool defaults
	assert.Equal(t, 10, p.Substeps)
	assert.Equal(t, "BEAM188", p.ElementType)
	assert.Equal(t, 5*time.Minute, timeout)
}

func TestRunParamsBadInput(t *testing.T) {
	require.NoError(t, RunCmd.ParseFlags([]string{"-m", "PET"}))

	_, _, err := runParams(RunCmd, []string{"m.csv", "folder", "shear"})
	assert.Error(t, err)
}
