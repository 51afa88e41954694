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
	"path/filepath"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deploylab/trussim/figures"
)

// FiguresCmd represents the figures command
var FiguresCmd = &cobra.Command{
	Use:   "figures",
	Short: "Render the study figures from collected result tables",
}

var deploymentCmd = &cobra.Command{
	Use:   "deployment",
	Short: "Flexural modulus against extension ratio for the deployment test",
	Run: func(cmd *cobra.Command, args []string) {
		figureRun(cmd, func(ctx context.Context) ([]string, error) {
			out, err := figures.Deployment(ctx, figures.DeploymentConfig{
				ResultsDir: figureResultsDir(cmd, "deployment_test"),
				PlotsDir:   figurePlotsDir(cmd, "deployment_test"),
				Workers:    figureWorkers(cmd),
			})
			return []string{out}, err
		})
	},
}

var aspectRatioCmd = &cobra.Command{
	Use:   "aspect-ratio",
	Short: "Flexural modulus against member aspect ratio",
	Run: func(cmd *cobra.Command, args []string) {
		figureRun(cmd, func(ctx context.Context) ([]string, error) {
			out, err := figures.AspectRatio(ctx, figures.AspectRatioConfig{
				ResultsDir: figureResultsDir(cmd, "aspect_ratio_scaling"),
				PlotsDir:   figurePlotsDir(cmd, "aspect_ratio_scaling"),
				Workers:    figureWorkers(cmd),
			})
			return []string{out}, err
		})
	},
}

var extensionSweepCmd = &cobra.Command{
	Use:   "extension-sweep",
	Short: "Stiffness against extension ratio for every load case",
	Run: func(cmd *cobra.Command, args []string) {
		massDir, _ := cmd.Flags().GetString("mass-data-dir")
		figureRun(cmd, func(ctx context.Context) ([]string, error) {
			return figures.Sweep(ctx, figures.SweepConfig{
				ResultsDir:  figureResultsDir(cmd, "extension_ratio_sweep"),
				MassDataDir: massDir,
				PlotsDir:    figurePlotsDir(cmd, "extension_ratio_sweep"),
				Workers:     figureWorkers(cmd),
			})
		})
	},
}

func init() {
	rootCmd.AddCommand(FiguresCmd)
	FiguresCmd.AddCommand(deploymentCmd, aspectRatioCmd, extensionSweepCmd)

	FiguresCmd.PersistentFlags().String("campaign-dir", "", "result directory override")
	FiguresCmd.PersistentFlags().String("plots-dir", "data/plots", "root directory for figure output")
	FiguresCmd.PersistentFlags().IntP("workers", "w", 0, "aggregation workers, 0 = NumCPU")
	FiguresCmd.PersistentFlags().Bool("profile", false, "write a CPU profile of the aggregation")

	extensionSweepCmd.Flags().String("mass-data-dir", "data/models", "model tree holding the family mass tables")
}

// figureRun wraps a figure builder with optional CPU profiling and prints
// the written files.
func figureRun(cmd *cobra.Command, build func(context.Context) ([]string, error)) {
	if prof, _ := cmd.Flags().GetBool("profile"); prof {
		defer profile.Start().Stop()
	}
	outs, err := build(context.Background())
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	for _, out := range outs {
		fmt.Println(out)
	}
}

func figureResultsDir(cmd *cobra.Command, campaign string) string {
	if dir, _ := cmd.Flags().GetString("campaign-dir"); dir != "" {
		return dir
	}
	return filepath.Join(viper.GetString("paths.results"), campaign)
}

func figurePlotsDir(cmd *cobra.Command, campaign string) string {
	dir, _ := cmd.Flags().GetString("plots-dir")
	return filepath.Join(dir, campaign)
}

func figureWorkers(cmd *cobra.Command) int {
	w, _ := cmd.Flags().GetInt("workers")
	return w
}
