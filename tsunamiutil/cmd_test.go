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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tsunami "github.com/giboul/tsunami-benchmarks"
	"github.com/spf13/viper"
)

func TestParseFrames(t *testing.T) {
	cases := []struct {
		in   string
		want []int
		err  bool
	}{
		{in: "10-12", want: []int{10, 11, 12}},
		{in: "7", want: []int{7}},
		{in: "3, 5, 9", want: []int{3, 5, 9}},
		{in: "", err: true},
		{in: "12-10", err: true},
		{in: "a-b", err: true},
		{in: "1,x", err: true},
	}
	for _, c := range cases {
		got, err := parseFrames(c.in)
		if c.err {
			if err == nil {
				t.Errorf("parseFrames(%q): want error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseFrames(%q): %v", c.in, err)
			continue
		}
		if len(got) != len(c.want) {
			t.Errorf("parseFrames(%q) = %v, want %v", c.in, got, c.want)
			continue
		}
		for k := range c.want {
			if got[k] != c.want[k] {
				t.Errorf("parseFrames(%q) = %v, want %v", c.in, got, c.want)
				break
			}
		}
	}
}

func TestGetFloat64Slice(t *testing.T) {
	cfg := viper.New()
	cfg.Set("native", []float64{1.5, 2.5})
	cfg.Set("str", "1.5, 2.5")
	cfg.Set("bracketed", "[1.5,2.5]")
	cfg.Set("empty", "")
	cfg.Set("bad", "1.5,x")

	for _, name := range []string{"native", "str", "bracketed"} {
		got, err := getFloat64Slice(name, cfg)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(got) != 2 || got[0] != 1.5 || got[1] != 2.5 {
			t.Errorf("%s = %v", name, got)
		}
	}
	if got, err := getFloat64Slice("empty", cfg); err != nil || len(got) != 0 {
		t.Errorf("empty = %v (%v)", got, err)
	}
	if _, err := getFloat64Slice("bad", cfg); err == nil {
		t.Error("want error for unparseable element")
	}
}

func TestOutputDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TSUNAMIBENCH_TEST_OUT", dir)

	cfg := viper.New()
	cfg.Set("OutputDir", "$TSUNAMIBENCH_TEST_OUT")
	got, err := outputDir(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got != dir {
		t.Errorf("outputDir = %q, want %q", got, dir)
	}

	cfg.Set("OutputDir", filepath.Join(dir, "missing"))
	if _, err := outputDir(cfg); err == nil {
		t.Error("want error for missing directory")
	}
	cfg.Set("OutputDir", "")
	if _, err := outputDir(cfg); err == nil {
		t.Error("want error for empty directory")
	}
}

func TestBuildDebris(t *testing.T) {
	model, squares, err := buildDebris(Cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(model.Particles) != 8 || len(squares) != 2 {
		t.Fatalf("%d particles, %d squares", len(model.Particles), len(squares))
	}
	if model.Substeps != 20 || model.ContactK != 50 {
		t.Errorf("substeps=%d contactK=%g", model.Substeps, model.ContactK)
	}

	// Default configuration: two squares with anchored first corners.
	anchor := model.Particle(0)
	if anchor.X != 35.54 || anchor.Y != 1.22 || anchor.Mass != 1e6 {
		t.Errorf("anchor 0 = %+v", anchor)
	}
	free := model.Particle(1)
	if free.Mass != 1 || free.DragFactor != 1 || free.Radius != 0.2 {
		t.Errorf("particle 1 = %+v", free)
	}
	if p := model.Particle(4); p.X != 34.34 || p.Y != 0.82 {
		t.Errorf("anchor 4 = %+v", p)
	}
	if _, ok := model.Tethers.Lookup(0, 2); !ok {
		t.Error("no diagonal tether 0-2")
	}
	if _, ok := model.Tethers.Lookup(3, 4); ok {
		t.Error("unexpected tether between squares")
	}
}

func TestSquaresFromHistories(t *testing.T) {
	histories := map[int]*tsunami.PathHistory{
		0: {}, 1: {}, 2: {}, 3: {},
		4: {}, 5: {}, 6: {}, 7: {},
	}
	squares := squaresFromHistories(histories)
	if len(squares) != 2 {
		t.Fatalf("%d squares", len(squares))
	}
	if squares[1] != [4]int{4, 5, 6, 7} {
		t.Errorf("squares = %v", squares)
	}

	// An incomplete group of corners is skipped.
	delete(histories, 5)
	if squares := squaresFromHistories(histories); len(squares) != 1 {
		t.Errorf("squares with missing corner = %v", squares)
	}
}

func TestObstacleBounds(t *testing.T) {
	cfg := viper.New()
	cfg.Set("Plot.Obstacle", "")
	if b, err := obstacleBounds(cfg); err != nil || b != nil {
		t.Errorf("empty obstacle = %v (%v)", b, err)
	}
	cfg.Set("Plot.Obstacle", []float64{1, 2, 3, 4})
	b, err := obstacleBounds(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if b.Min.X != 1 || b.Max.Y != 4 {
		t.Errorf("obstacle = %+v", b)
	}
	cfg.Set("Plot.Obstacle", []float64{1, 2, 3})
	if _, err := obstacleBounds(cfg); err == nil {
		t.Error("want error for 3-value obstacle")
	}
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	Root.SetOut(&out)
	Root.SetArgs([]string{"version"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), tsunami.Version) {
		t.Errorf("version output %q", out.String())
	}
}

func TestSetrunCmd(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CLAW", "/opt/clawpack")
	Root.SetArgs([]string{"setrun", "-b", "bm1", "--SetRun.Dir", dir})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"claw.data", "geoclaw.data", "fgout_grids.data"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}
