// =============================================================================
// CSV Toolkit - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'process', 'inspect') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (csvtoolkit)
//   ├── processCmd (csvtoolkit process)
//   ├── inspectCmd (csvtoolkit inspect)
//   ├── validateCmd (csvtoolkit validate)
//   └── versionCmd (csvtoolkit version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (e.g., --config, --verbose)
//   2. Loading the configuration on demand for the subcommands
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DSchuppelius/go-csv-toolkit/internal/config"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
// This is the entry point for the CLI application.
var rootCmd = &cobra.Command{
	Use: "csvtoolkit",

	Short: "CSV Toolkit - Parse, inspect and convert delimited text files without losing a byte",

	Long: `CSV Toolkit is a CLI tool for delimited text files that refuses to guess.
It parses fields with their full quoting structure, infers typed values under
locale rules, and can reconstruct every line byte for byte.

Key Features:
  - Quote-run aware tokenizing with strict positional errors
  - Locale-driven type inference (numbers, booleans, dates)
  - Byte-exact line reconstruction
  - Dialect profiles per file family, including DATEV exports
  - XML and XLSX output with typed values

Example Usage:
  csvtoolkit process                    # Process all files in the input directory
  csvtoolkit process --config ./my.yaml # Use a custom configuration file
  csvtoolkit inspect file.csv           # Show the parsed structure of a file
  csvtoolkit validate file.csv          # Validate a file against its profile`,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// loadConfiguration loads the main config and all dialect profiles for the
// subcommands.
func loadConfiguration() (*config.MainConfig, map[string]*config.DialectProfile, error) {
	mainConfig, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load main config: %w", err)
	}
	profiles, err := config.LoadProfiles(mainConfig.ProfilesDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	return mainConfig, profiles, nil
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init is called automatically when the package is loaded.
// It sets up the global flags.
func init() {
	// Persistent flags are available to this command and all subcommands.

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
