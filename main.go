// =============================================================================
// CSV Toolkit - Main Entry Point
// =============================================================================
//
// This is the main entry point for the CSV Toolkit CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   csvtoolkit process       - Process all files in the input directory
//   csvtoolkit inspect       - Show the parsed structure of a file
//   csvtoolkit validate      - Validate a file against its dialect profile
//   csvtoolkit version       - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//   - profiles/      : Contains per-file-family dialect profiles (YAML)
//
// =============================================================================

package main

import (
	"github.com/DSchuppelius/go-csv-toolkit/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
