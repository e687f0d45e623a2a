package main

import (
	"fmt"
	"os"

	"github.com/temirov/gareth/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the gareth command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
