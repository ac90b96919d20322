package main

import (
	"os"

	"github.com/mikeleppane/release-py/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
