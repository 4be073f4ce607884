package main

import (
	"os"

	"github.com/rigtools/regroup/cmd/regroup/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
