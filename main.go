package main

import (
	"os"

	"github.com/tareeqi/tareeqweb/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
