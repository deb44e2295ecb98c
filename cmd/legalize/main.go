// Command legalize is a thin CLI harness around the dpl legalization
// core: it reads a design snapshot, legalizes it, and writes the result
// back. None of this belongs to the core; it is the outer layer the core
// spec explicitly excludes.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
