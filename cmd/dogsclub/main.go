package main

import (
	"os"

	"github.com/fatih/color"
)

var errorColor = color.New(color.FgRed, color.Bold)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errorColor.Fprintf(os.Stderr, "Erro: %v\n", err)
		os.Exit(1)
	}
}
