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
	"io"
	"os"
	"path/filepath"

	"github.com/ctessum/geom"
	tsunami "github.com/giboul/tsunami-benchmarks"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// animateCmd renders one image per fgout frame for animation assembly.
var animateCmd = &cobra.Command{
	Use:   "animate",
	Short: "Render animation frames of the flow and debris motion",
	Long: `animate renders one image per configured fgout frame showing the flow
speed field with the debris square outlines overlaid, reading previously
computed paths from Debris.PathsFile (run the debris command first).
The images are written to Plot.Dir for assembly into a movie by an
external tool.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outdir, err := outputDir(Cfg)
		if err != nil {
			return err
		}
		framenos, err := parseFrames(Cfg.GetString("FGout.Frames"))
		if err != nil {
			return err
		}
		fg, err := tsunami.NewFGoutGrid(Cfg.GetInt("FGout.Number"), outdir, Cfg.GetString("FGout.Format"))
		if err != nil {
			return err
		}

		pathsFile := os.ExpandEnv(Cfg.GetString("Debris.PathsFile"))
		pf, err := os.Open(pathsFile)
		if err != nil {
			return fmt.Errorf("tsunamibench: opening debris paths (run the debris command first): %v", err)
		}
		histories, err := tsunami.LoadPaths(pf)
		pf.Close()
		if err != nil {
			return err
		}
		squares := squaresFromHistories(histories)

		obstacle, err := obstacleBounds(Cfg)
		if err != nil {
			return err
		}
		plotDir := os.ExpandEnv(Cfg.GetString("Plot.Dir"))
		if err := os.MkdirAll(plotDir, 0755); err != nil {
			return fmt.Errorf("tsunamibench: %v", err)
		}
		maxSpeed := Cfg.GetFloat64("Plot.MaxSpeed")

		next := fg.Frames(framenos)
		n := 0
		for {
			frame, err := next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}
			fp := &tsunami.FramePlot{
				Frame:    frame,
				Outlines: tsunami.SquareOutlines(histories, squares, frame.T),
				Obstacle: obstacle,
				MaxSpeed: maxSpeed,
			}
			fname := filepath.Join(plotDir, fmt.Sprintf("frame%04d.png", framenos[n]))
			if err := fp.Save(fname); err != nil {
				return err
			}
			n++
		}
		logger.WithField("frames", n).Info("wrote animation frames")
		return nil
	},
	DisableAutoGenTag: true,
}

// squaresFromHistories groups particle ids into squares by their
// creation order: each square's four corners get consecutive ids.
func squaresFromHistories(histories map[int]*tsunami.PathHistory) [][4]int {
	maxID := -1
	for id := range histories {
		if id > maxID {
			maxID = id
		}
	}
	var squares [][4]int
	for base := 0; base+3 <= maxID; base += 4 {
		complete := true
		for k := 0; k < 4; k++ {
			if _, ok := histories[base+k]; !ok {
				complete = false
				break
			}
		}
		if complete {
			squares = append(squares, [4]int{base, base + 1, base + 2, base + 3})
		}
	}
	return squares
}

// obstacleBounds parses the Plot.Obstacle rectangle, if configured.
func obstacleBounds(cfg *viper.Viper) (*geom.Bounds, error) {
	vals, err := getFloat64Slice("Plot.Obstacle", cfg)
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, nil
	}
	if len(vals) != 4 {
		return nil, fmt.Errorf("tsunamibench: Plot.Obstacle needs 4 values x1,y1,x2,y2, have %d", len(vals))
	}
	return &geom.Bounds{
		Min: geom.Point{X: vals[0], Y: vals[1]},
		Max: geom.Point{X: vals[2], Y: vals[3]},
	}, nil
}
