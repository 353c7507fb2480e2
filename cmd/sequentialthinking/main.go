package main

import (
	"os"

	"github.com/nalyk/sequentialthinking/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
