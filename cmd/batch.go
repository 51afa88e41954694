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

	"github.com/deploylab/trussim/sim"
)

// BatchCmd represents the batch command
var BatchCmd = &cobra.Command{
	Use:   "batch <campaign.yaml>",
	Short: "Run every simulation of a YAML campaign",
	Long: `
Runs every model file in every campaign folder under every listed
boundary condition,

trussim batch campaigns/extension_ratio_sweep.yaml`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := sim.LoadCampaign(args[0])
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		c.Print()

		timeout, _ := cmd.Flags().GetDuration("timeout")
		converged, attempted, err := sim.RunCampaign(
			context.Background(), solverConfig(timeout), dataPaths(), c)
		if err != nil {
			log.WithError(err).Error("campaign aborted")
			os.Exit(1)
		}
		fmt.Printf("%d/%d runs converged\n", converged, attempted)
	},
}

func init() {
	rootCmd.AddCommand(BatchCmd)
	BatchCmd.Flags().Duration("timeout", 30*time.Minute, "solver timeout per run")
}
