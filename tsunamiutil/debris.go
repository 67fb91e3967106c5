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

	tsunami "github.com/giboul/tsunami-benchmarks"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// debrisCmd computes debris paths from fgout frames.
var debrisCmd = &cobra.Command{
	Use:   "debris",
	Short: "Advect debris squares through the simulated flow",
	Long: `debris reads the configured fgout frames and advects tethered debris
squares through the simulated flow field. The computed particle paths
are written to a NetCDF file for animation and further analysis.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunDebris(Cfg)
	},
	DisableAutoGenTag: true,
}

// buildDebris assembles the debris squares and tether graph from the
// configuration. It returns the model and, per square, the four corner
// particle ids in outline order.
func buildDebris(cfg *viper.Viper) (*tsunami.DebrisModel, [][4]int, error) {
	corners, err := getFloat64Slice("Debris.Squares", cfg)
	if err != nil {
		return nil, nil, err
	}
	if len(corners) == 0 || len(corners)%2 != 0 {
		return nil, nil, fmt.Errorf("tsunamibench: Debris.Squares needs an even number of values, have %d", len(corners))
	}

	tmpl := tsunami.Particle{
		Mass:           cfg.GetFloat64("Debris.Mass"),
		Radius:         cfg.GetFloat64("Debris.Radius"),
		DragFactor:     cfg.GetFloat64("Debris.DragFactor"),
		GroundingDepth: cfg.GetFloat64("Debris.GroundingDepth"),
	}
	length := cfg.GetFloat64("Debris.SquareLength")
	stiffness := cfg.GetFloat64("Debris.Stiffness")
	anchorMass := cfg.GetFloat64("Debris.AnchorMass")

	graph := tsunami.NewTetherGraph()
	var particles []*tsunami.Particle
	var squares [][4]int
	for k := 0; k*2 < len(corners); k++ {
		baseID := k * 4
		ps, err := tsunami.Square(graph, baseID, corners[2*k], corners[2*k+1], length, stiffness, tmpl, anchorMass)
		if err != nil {
			return nil, nil, err
		}
		particles = append(particles, ps...)
		squares = append(squares, [4]int{baseID, baseID + 1, baseID + 2, baseID + 3})
	}

	model, err := tsunami.NewDebrisModel(particles, graph,
		cfg.GetInt("Debris.Substeps"), cfg.GetFloat64("Debris.ContactK"))
	if err != nil {
		return nil, nil, err
	}
	return model, squares, nil
}

// RunDebris runs the debris path computation configured in cfg and
// writes the resulting paths.
func RunDebris(cfg *viper.Viper) error {
	outdir, err := outputDir(cfg)
	if err != nil {
		return err
	}
	framenos, err := parseFrames(cfg.GetString("FGout.Frames"))
	if err != nil {
		return err
	}
	fg, err := tsunami.NewFGoutGrid(cfg.GetInt("FGout.Number"), outdir, cfg.GetString("FGout.Format"))
	if err != nil {
		return err
	}
	model, squares, err := buildDebris(cfg)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"particles": len(model.Particles),
		"frames":    len(framenos),
		"substeps":  model.Substeps,
	}).Info("computing debris paths")

	if err := model.Run(fg.Frames(framenos)); err != nil {
		return err
	}

	pathsFile := os.ExpandEnv(cfg.GetString("Debris.PathsFile"))
	if pathsFile == "" {
		return fmt.Errorf("tsunamibench: the Debris.PathsFile configuration variable must be set")
	}
	w, err := os.Create(pathsFile)
	if err != nil {
		return fmt.Errorf("tsunamibench: %v", err)
	}
	if err := tsunami.WritePaths(w, model.Histories()); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("tsunamibench: %v", err)
	}
	logger.WithField("file", pathsFile).Info("wrote debris paths")

	if gj := os.ExpandEnv(cfg.GetString("Debris.GeoJSONFile")); gj != "" {
		history := model.History(model.IDs()[0])
		samples := history.Samples()
		tFinal := samples[len(samples)-1].T
		b, err := tsunami.SquaresGeoJSON(model.Histories(), squares, tFinal)
		if err != nil {
			return err
		}
		if err := os.WriteFile(gj, b, 0644); err != nil {
			return fmt.Errorf("tsunamibench: %v", err)
		}
		logger.WithField("file", gj).Info("wrote debris square outlines")
	}
	return nil
}
