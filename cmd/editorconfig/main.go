// Package main is the entry point for the editorconfig CLI.
package main

import (
	"github.com/dshills/editorconfig/internal/cmd"
)

func main() {
	cmd.Execute()
}
