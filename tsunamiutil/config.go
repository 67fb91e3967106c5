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
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// getFloat64Slice returns a []float64 from a viper configuration,
// accepting either a native slice or a comma-separated string (the form
// a flag value arrives in).
func getFloat64Slice(varName string, cfg *viper.Viper) ([]float64, error) {
	i := cfg.Get(varName)
	switch v := i.(type) {
	case string:
		v = strings.Trim(v, "[]")
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		var out []float64
		for _, field := range strings.Split(v, ",") {
			x, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("tsunamibench: configuration variable %s: %v", varName, err)
			}
			out = append(out, x)
		}
		return out, nil
	default:
		s, err := cast.ToSliceE(i)
		if err != nil {
			return nil, fmt.Errorf("tsunamibench: configuration variable %s: %v", varName, err)
		}
		out := make([]float64, len(s))
		for k, e := range s {
			x, err := cast.ToFloat64E(e)
			if err != nil {
				return nil, fmt.Errorf("tsunamibench: configuration variable %s: %v", varName, err)
			}
			out[k] = x
		}
		return out, nil
	}
}

// parseFrames parses a frame selection: either a range "first-last"
// (inclusive) or a comma-separated list of frame numbers.
func parseFrames(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("tsunamibench: empty frame selection")
	}
	if first, last, ok := strings.Cut(s, "-"); ok {
		a, err1 := strconv.Atoi(strings.TrimSpace(first))
		b, err2 := strconv.Atoi(strings.TrimSpace(last))
		if err1 != nil || err2 != nil || b < a {
			return nil, fmt.Errorf("tsunamibench: invalid frame range %q", s)
		}
		out := make([]int, 0, b-a+1)
		for n := a; n <= b; n++ {
			out = append(out, n)
		}
		return out, nil
	}
	var out []int
	for _, field := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("tsunamibench: invalid frame selection %q: %v", s, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// outputDir expands environment variables in the configured output
// directory and checks that it exists: the tools cannot do anything
// useful without solver output, so a missing directory fails fast.
func outputDir(cfg *viper.Viper) (string, error) {
	dir := os.ExpandEnv(cfg.GetString("OutputDir"))
	if dir == "" {
		return "", fmt.Errorf("tsunamibench: the OutputDir configuration variable must be set")
	}
	if _, err := os.Stat(dir); err != nil {
		return "", fmt.Errorf("tsunamibench: output directory: %v", err)
	}
	return dir, nil
}
