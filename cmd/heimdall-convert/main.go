/*
Package main provides the CLI entry point for heimdall-convert.
*/
package main

import (
	"os"

	"github.com/oarkflow/dashconv/internal/cmd"
	"github.com/oarkflow/dashconv/internal/config"
)

func main() {
	if err := cmd.Execute(config.TargetHeimdall); err != nil {
		os.Exit(1)
	}
}
