// Package main is the entry point for the westcheck CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/westcheck/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
