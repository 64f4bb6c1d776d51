package main

import (
	"os"

	"github.com/ewoodward/gridshift/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
