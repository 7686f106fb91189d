// =============================================================================
// WZ Generator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the WZ Generator application. It
// initializes the Cobra CLI framework and delegates command execution to the
// cmd package.
//
// USAGE:
//   wzgen            - Open the graphical shell (default)
//   wzgen generate   - Headless run: analyze a folder and generate the WZ
//   wzgen version    - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core pipeline (parser, aggregator, prices, docgen, GUI)
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/lpkonstal/wz-generator/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
