// Package main is the entry point for the pydex CLI tool.
package main

import (
	"github.com/pydexlabs/pydex/internal/cmd"
)

func main() {
	cmd.Execute()
}
