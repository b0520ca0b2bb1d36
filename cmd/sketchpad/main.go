package main

import (
	"os"

	"github.com/fatih/color"
)

var (
	errOut  = color.New(color.FgRed)
	warnOut = color.New(color.FgYellow)
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		errOut.Fprintf(os.Stderr, "sketchpad failed: %v\n", err)
		os.Exit(1)
	}
}
