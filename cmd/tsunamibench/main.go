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

// Command tsunamibench is a command-line interface for post-processing
// GeoClaw tsunami benchmark runs.
package main

import (
	"fmt"
	"os"

	"github.com/giboul/tsunami-benchmarks/tsunamiutil"
)

func main() {
	if err := tsunamiutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
