package main

import (
	"fmt"
	"os"

	"github.com/roach88/templet/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
