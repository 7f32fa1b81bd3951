/*
Package main provides the CLI entry point for homer-convert.
*/
package main

import (
	"os"

	"github.com/oarkflow/dashconv/internal/cmd"
	"github.com/oarkflow/dashconv/internal/config"
)

func main() {
	if err := cmd.Execute(config.TargetHomer); err != nil {
		os.Exit(1)
	}
}
