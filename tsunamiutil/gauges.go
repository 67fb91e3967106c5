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

package tsunamiutil

import (
	"fmt"
	"os"
	"text/tabwriter"

	tsunami "github.com/giboul/tsunami-benchmarks"
	"github.com/spf13/cobra"
)

// gaugesCmd compares modeled gauge output against reference data.
var gaugesCmd = &cobra.Command{
	Use:   "gauges",
	Short: "Compare gauge output against benchmark reference data",
	Long: `gauges reads the configured gauge's output from the GeoClaw output
directory, compares the modeled surface elevation against the benchmark
reference series, and prints misfit statistics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outdir, err := outputDir(Cfg)
		if err != nil {
			return err
		}
		refFile := os.ExpandEnv(Cfg.GetString("Gauge.ReferenceFile"))
		if refFile == "" {
			return fmt.Errorf("tsunamibench: the Gauge.ReferenceFile configuration variable must be set")
		}
		id := Cfg.GetInt("Gauge.ID")

		g, err := tsunami.ReadGauge(outdir, id)
		if err != nil {
			return err
		}
		tobs, vobs, err := tsunami.ReadReference(refFile)
		if err != nil {
			return err
		}
		stats, err := tsunami.CompareGauge(g, tobs, vobs)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		fmt.Fprintf(w, "gauge %d vs %s (%d samples)\n", id, refFile, stats.N)
		fmt.Fprintf(w, "max |err|\t%.4g m\n", stats.MaxAbsErr)
		fmt.Fprintf(w, "mean err\t%.4g m\n", stats.MeanErr)
		fmt.Fprintf(w, "rms err\t%.4g m\n", stats.RMSErr)
		fmt.Fprintf(w, "fit slope\t%.4g\n", stats.Slope)
		fmt.Fprintf(w, "fit intercept\t%.4g m\n", stats.Intercept)
		fmt.Fprintf(w, "fit R²\t%.4g\n", stats.RSquared)
		if err := w.Flush(); err != nil {
			return err
		}

		if plotFile := os.ExpandEnv(Cfg.GetString("Gauge.PlotFile")); plotFile != "" {
			title := fmt.Sprintf("Gauge %d", id)
			if err := tsunami.PlotGaugeComparison(title, g.T, g.Eta, tobs, vobs, plotFile); err != nil {
				return err
			}
			logger.WithField("file", plotFile).Info("wrote gauge comparison plot")
		}
		return nil
	},
	DisableAutoGenTag: true,
}
