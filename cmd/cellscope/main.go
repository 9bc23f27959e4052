// SPDX-License-Identifier: MIT

// Command cellscope clusters and plots annotated matrices stored as CSV.
package main

import (
	"os"

	"github.com/katalvlaran/cellscope/cmd/cellscope/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
