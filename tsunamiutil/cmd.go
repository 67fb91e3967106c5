/*
Copyright © 2023 the tsunami-benchmarks authors.
This file is part of tsunami-benchmarks.

tsunami-benchmarks is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

tsunami-benchmarks is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with tsunami-benchmarks.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package tsunamiutil provides the command-line interface for the
// tsunami-benchmarks post-processing tools.
package tsunamiutil

import (
	"fmt"

	tsunami "github.com/giboul/tsunami-benchmarks"
	"github.com/giboul/tsunami-benchmarks/rundata"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var logger = logrus.StandardLogger()

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	// Options are the configuration options available to the
	// benchmark tools.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "OutputDir",
			usage: `
              OutputDir is the GeoClaw output directory holding fgout
              frames and gauge files. Can include environment variables.`,
			shorthand:  "o",
			defaultVal: "_output",
			flagsets:   []*pflag.FlagSet{debrisCmd.PersistentFlags(), gaugesCmd.Flags(), animateCmd.Flags()},
		},
		{
			name: "FGout.Number",
			usage: `
              FGout.Number is the fgout grid number within the GeoClaw
              run whose frames are read.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{debrisCmd.PersistentFlags(), animateCmd.Flags()},
		},
		{
			name: "FGout.Format",
			usage: `
              FGout.Format is the fgout frame data format: ascii,
              binary32 or binary64.`,
			defaultVal: "binary32",
			flagsets:   []*pflag.FlagSet{debrisCmd.PersistentFlags(), animateCmd.Flags()},
		},
		{
			name: "FGout.Frames",
			usage: `
              FGout.Frames selects the fgout frames to process, either
              as a range "first-last" or as a comma-separated list.`,
			defaultVal: "10-39",
			flagsets:   []*pflag.FlagSet{debrisCmd.PersistentFlags(), animateCmd.Flags()},
		},
		{
			name: "Debris.Substeps",
			usage: `
              Debris.Substeps is the number of integration sub-steps
              per fgout frame interval.`,
			defaultVal: 20,
			flagsets:   []*pflag.FlagSet{debrisCmd.PersistentFlags()},
		},
		{
			name: "Debris.Stiffness",
			usage: `
              Debris.Stiffness is the spring constant of the tethers
              holding each debris square together.`,
			defaultVal: 50.0,
			flagsets:   []*pflag.FlagSet{debrisCmd.PersistentFlags()},
		},
		{
			name: "Debris.ContactK",
			usage: `
              Debris.ContactK is the spring constant of the bottom
              contact force resisting motion of grounded particles.`,
			defaultVal: 50.0,
			flagsets:   []*pflag.FlagSet{debrisCmd.PersistentFlags()},
		},
		{
			name: "Debris.SquareLength",
			usage: `
              Debris.SquareLength is the side length of each debris
              square.`,
			defaultVal: 0.6,
			flagsets:   []*pflag.FlagSet{debrisCmd.PersistentFlags()},
		},
		{
			name: "Debris.Squares",
			usage: `
              Debris.Squares lists the lower-left corners of the debris
              squares as a flat sequence x1,y1,x2,y2,...`,
			defaultVal: []float64{35.54, 1.22, 34.34, 0.82},
			flagsets:   []*pflag.FlagSet{debrisCmd.PersistentFlags()},
		},
		{
			name: "Debris.Mass",
			usage: `
              Debris.Mass is the mass of each debris corner particle.`,
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{debrisCmd.PersistentFlags()},
		},
		{
			name: "Debris.AnchorMass",
			usage: `
              Debris.AnchorMass overrides the mass of each square's
              first corner so the square pivots around a nearly
              immovable anchor. Zero disables the override.`,
			defaultVal: 1.e6,
			flagsets:   []*pflag.FlagSet{debrisCmd.PersistentFlags()},
		},
		{
			name: "Debris.Radius",
			usage: `
              Debris.Radius is the effective radius of each debris
              particle.`,
			defaultVal: 0.2,
			flagsets:   []*pflag.FlagSet{debrisCmd.PersistentFlags()},
		},
		{
			name: "Debris.DragFactor",
			usage: `
              Debris.DragFactor scales the drag force the flow exerts
              on each particle.`,
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{debrisCmd.PersistentFlags()},
		},
		{
			name: "Debris.GroundingDepth",
			usage: `
              Debris.GroundingDepth is the water depth below which a
              particle rests on the bottom and stops feeling drag.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{debrisCmd.PersistentFlags()},
		},
		{
			name: "Debris.PathsFile",
			usage: `
              Debris.PathsFile is the NetCDF file the computed debris
              paths are written to and read back from.`,
			defaultVal: "debris_paths.nc",
			flagsets:   []*pflag.FlagSet{debrisCmd.PersistentFlags(), animateCmd.Flags()},
		},
		{
			name: "Debris.GeoJSONFile",
			usage: `
              Debris.GeoJSONFile, if set, receives the debris square
              outlines at the final frame time as GeoJSON.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{debrisCmd.PersistentFlags()},
		},
		{
			name: "Plot.Dir",
			usage: `
              Plot.Dir is the directory animation frame images are
              written to.`,
			defaultVal: "_plots",
			flagsets:   []*pflag.FlagSet{animateCmd.Flags()},
		},
		{
			name: "Plot.MaxSpeed",
			usage: `
              Plot.MaxSpeed saturates the speed color scale [m/s].`,
			defaultVal: 1.5,
			flagsets:   []*pflag.FlagSet{animateCmd.Flags()},
		},
		{
			name: "Plot.Obstacle",
			usage: `
              Plot.Obstacle draws a stationary block as the rectangle
              x1,y1,x2,y2. Empty disables it.`,
			defaultVal: []float64{35.54, 1.22, 36.14, 1.82},
			flagsets:   []*pflag.FlagSet{animateCmd.Flags()},
		},
		{
			name: "SetRun.Benchmark",
			usage: `
              SetRun.Benchmark selects the benchmark preset to write
              run parameters for: monai or bm1.`,
			shorthand:  "b",
			defaultVal: "monai",
			flagsets:   []*pflag.FlagSet{setrunCmd.Flags()},
		},
		{
			name: "SetRun.Dir",
			usage: `
              SetRun.Dir is the directory the .data parameter files are
              written to.`,
			defaultVal: ".",
			flagsets:   []*pflag.FlagSet{setrunCmd.Flags()},
		},
		{
			name: "Gauge.ID",
			usage: `
              Gauge.ID is the gauge number to compare against reference
              data.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{gaugesCmd.Flags()},
		},
		{
			name: "Gauge.ReferenceFile",
			usage: `
              Gauge.ReferenceFile is a two-column (time, elevation)
              text file of benchmark reference data.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{gaugesCmd.Flags()},
		},
		{
			name: "Gauge.PlotFile",
			usage: `
              Gauge.PlotFile, if set, receives a plot of the modeled
              series against the reference data.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{gaugesCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("TSUNAMIBENCH")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			case []float64:
				if option.shorthand == "" {
					set.Float64Slice(option.name, option.defaultVal.([]float64), option.usage)
				} else {
					set.Float64SliceP(option.name, option.shorthand, option.defaultVal.([]float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(setrunCmd)
	Root.AddCommand(debrisCmd)
	Root.AddCommand(gaugesCmd)
	Root.AddCommand(animateCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("tsunamibench: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "tsunamibench",
	Short: "Configure and post-process GeoClaw tsunami benchmark runs.",
	Long: `tsunamibench configures GeoClaw runs for the NTHMP benchmark problems
and post-processes their output: it writes the solver's .data parameter
files, advects tethered debris particles through the simulated flow
field, compares gauge output against benchmark reference data, and
renders animation frames.

Configuration can be changed by using a configuration file (and providing
the path to the file using the --config flag), by using command-line
arguments, or by setting environment variables in the format
'TSUNAMIBENCH_var' where 'var' is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("tsunamibench v%s\n", tsunami.Version)
	},
	DisableAutoGenTag: true,
}

// setrunCmd writes the .data parameter files for a benchmark preset.
var setrunCmd = &cobra.Command{
	Use:   "setrun",
	Short: "Write GeoClaw run parameter files",
	Long: `setrun writes the .data files the GeoClaw solver reads at startup,
using the selected benchmark preset.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rd, err := rundata.Benchmark(Cfg.GetString("SetRun.Benchmark"))
		if err != nil {
			return err
		}
		dir := Cfg.GetString("SetRun.Dir")
		if err := rd.WriteAll(dir); err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{
			"benchmark": Cfg.GetString("SetRun.Benchmark"),
			"dir":       dir,
		}).Info("wrote run parameter files")
		return nil
	},
	DisableAutoGenTag: true,
}
