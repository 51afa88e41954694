/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/deploylab/trussim/apdl"
	"github.com/deploylab/trussim/geometry"
	"github.com/deploylab/trussim/sim"
)

// RunCmd represents the run command
var RunCmd = &cobra.Command{
	Use:   "run <model.csv> <folder> <bc>",
	Short: "Run a single truss simulation through the solver",
	Long: `
Builds the APDL input deck for one geometry CSV, runs MAPDL in batch
mode, and writes the reaction result table,

trussim run alpha_1.5_cells_6.csv data/models/pets/deployment_test cant_x -m PET`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		p, timeout, err := runParams(cmd, args)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}

		converged, err := sim.Run(context.Background(), solverConfig(timeout), dataPaths(), p)
		if err != nil {
			log.WithError(err).Error("simulation failed")
			os.Exit(1)
		}
		if !converged {
			log.Warn("solution did not converge")
			os.Exit(2)
		}
		fmt.Println("converged")
	},
}

func init() {
	rootCmd.AddCommand(RunCmd)
	d := sim.DefaultParams()
	RunCmd.Flags().StringP("mech-type", "m", "", "mechanism family: PET, SCISSOR, KRESLING or HERDS")
	RunCmd.Flags().Float64("percent-displacement", d.PercentDisplacement, "driven displacement as percent of gauge length")
	RunCmd.Flags().Float64("fixed-displacement", 0, "absolute driven displacement, overrides the percent")
	RunCmd.Flags().Int("substeps", d.Substeps, "solution substeps")
	RunCmd.Flags().Int("num-elements", d.NumElements, "beam elements per link")
	RunCmd.Flags().Int("num-cross-elements", d.NumCrossElements, "cells across the beam section")
	RunCmd.Flags().String("element-type", d.ElementType, "beam element type")
	RunCmd.Flags().String("result-filename", "", "result table name override")
	RunCmd.Flags().Float64("scale", d.Scale, "geometry scale factor")
	RunCmd.Flags().Float64("cross-scale", d.CrossScale, "cross section scale factor")
	RunCmd.Flags().Float64("youngs-modulus", d.E, "Young's modulus of the member material")
	RunCmd.Flags().Bool("warp", false, "enable warping DOF on the beam elements")
	RunCmd.Flags().Duration("timeout", 30*time.Minute, "solver timeout")
}

// runParams assembles single-run parameters from the positional arguments
// <model.csv> <folder> <bc> and the run flags.
func runParams(cmd *cobra.Command, args []string) (p sim.Params, timeout time.Duration, err error) {
	p = sim.DefaultParams()
	p.ModelFile = args[0]
	p.FolderPath = args[1]

	mt, _ := cmd.Flags().GetString("mech-type")
	if p.Mech, err = geometry.NewMechType(mt); err != nil {
		return p, 0, err
	}
	if p.Boundary, err = apdl.ParseBoundary(args[2]); err != nil {
		return p, 0, err
	}

	p.PercentDisplacement, _ = cmd.Flags().GetFloat64("percent-displacement")
	if cmd.Flags().Changed("fixed-displacement") {
		fixed, _ := cmd.Flags().GetFloat64("fixed-displacement")
		p.FixedDisplacement = &fixed
	}
	p.Substeps, _ = cmd.Flags().GetInt("substeps")
	p.NumElements, _ = cmd.Flags().GetInt("num-elements")
	p.NumCrossElements, _ = cmd.Flags().GetInt("num-cross-elements")
	p.ElementType, _ = cmd.Flags().GetString("element-type")
	p.ResultName, _ = cmd.Flags().GetString("result-filename")
	p.Scale, _ = cmd.Flags().GetFloat64("scale")
	p.CrossScale, _ = cmd.Flags().GetFloat64("cross-scale")
	p.E, _ = cmd.Flags().GetFloat64("youngs-modulus")
	p.Warp, _ = cmd.Flags().GetBool("warp")
	timeout, _ = cmd.Flags().GetDuration("timeout")
	return p, timeout, nil
}
