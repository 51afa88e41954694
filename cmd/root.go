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
	"fmt"
	"os"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deploylab/trussim/sim"
	"github.com/deploylab/trussim/solver"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "trussim",
	Short: "Stiffness studies of deployable trusses via ANSYS MAPDL",
	Long: `
Generates APDL input decks for deployable truss models (PET, scissor,
Kresling, HERDS), drives ANSYS MAPDL in batch mode, collects reaction
forces into result tables and renders the study figures.

trussim run <model.csv> <folder> <bc>`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.trussim.yaml)")
	rootCmd.PersistentFlags().String("ansys-exe", "mapdl", "ANSYS MAPDL executable")
	rootCmd.PersistentFlags().IntP("nproc", "p", 4, "solver processes per run")
	rootCmd.PersistentFlags().String("log-dir", "log", "root directory for per-run solver files")
	rootCmd.PersistentFlags().String("results-dir", "data/results", "root directory for result tables")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")

	viper.BindPFlag("ansys.exe", rootCmd.PersistentFlags().Lookup("ansys-exe"))
	viper.BindPFlag("ansys.nproc", rootCmd.PersistentFlags().Lookup("nproc"))
	viper.BindPFlag("paths.log", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("paths.results", rootCmd.PersistentFlags().Lookup("results-dir"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".trussim" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".trussim")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	if v, _ := rootCmd.PersistentFlags().GetBool("verbose"); v {
		log.SetLevel(log.DebugLevel)
	}
}

// solverConfig assembles the MAPDL invocation settings from viper and the
// per-command timeout flag.
func solverConfig(timeout time.Duration) solver.Config {
	return solver.Config{
		Exe:     viper.GetString("ansys.exe"),
		NProc:   viper.GetInt("ansys.nproc"),
		Timeout: timeout,
	}
}

func dataPaths() sim.Paths {
	return sim.Paths{
		LogRoot:     viper.GetString("paths.log"),
		ResultsRoot: viper.GetString("paths.results"),
	}
}
