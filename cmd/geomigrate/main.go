// Command geomigrate migrates a legacy knowledge graph into canonical
// graph operations.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/geomigrate/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
