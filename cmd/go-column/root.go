// Copyright 2026 go-column Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the version of this release.
const Version = "0.1.0"

var namelistPath string

var rootCmd = &cobra.Command{
	Use:   "go-column",
	Short: "A single-column atmospheric forcing driver.",
	Long: `go-column steps an idealized column atmosphere forward under
prescribed large-scale forcing (subsidence and tendency divergences),
using the vertical column core. Configuration comes from a TOML
namelist supplied with --namelist; missing entries fall back to a
small built-in moist hydrostatic case.`,
	DisableAutoGenTag: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("go-column v%s\n", Version)
	},
	DisableAutoGenTag: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the forced single-column simulation.",
	Long: `run integrates the configured number of timesteps and reports
per-column integrals (mass-weighted temperature, precipitable water)
at the end of the run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		nl, err := loadNamelist(namelistPath)
		if err != nil {
			return err
		}
		return runSimulation(nl)
	},
	DisableAutoGenTag: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&namelistPath, "namelist", "",
		"path to the TOML run namelist")
	rootCmd.AddCommand(versionCmd, runCmd)
}
