// =============================================================================
// Coverage Report Generator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Coverage Report Generator CLI. It
// delegates command execution to the cmd package.
//
// USAGE:
//   coverage area      - Circle > zone > ward coverage report
//   coverage fleet     - Circle > vehicle coverage report
//   coverage wards     - Parse and check a ward list
//   coverage version   - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Parsing, membership, aggregation and rendering
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/coverage-report/cmd"
)

func main() {
	cmd.Execute()
}
