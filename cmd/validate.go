// =============================================================================
// CSV Toolkit - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks a file against its
// dialect profile without producing any output files. It runs the same
// parsing and validation the process command runs and prints the findings.
//
// COMMAND USAGE:
//   csvtoolkit validate <file> [flags]
//
// FLAGS:
//   --profile : Force a specific profile instead of pattern matching
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DSchuppelius/go-csv-toolkit/internal/config"
	"github.com/DSchuppelius/go-csv-toolkit/internal/converter"
	"github.com/DSchuppelius/go-csv-toolkit/internal/record"
	"github.com/DSchuppelius/go-csv-toolkit/internal/validation"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// validateProfile forces a profile by name instead of pattern matching.
var validateProfile string

// =============================================================================
// VALIDATE COMMAND DEFINITION
// =============================================================================

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a file against its dialect profile without converting it",
	Long: `The validate command parses a file under its matched dialect profile and
runs the profile's validation rules. No output files are written and the
input is not archived. The command exits non-zero when the file has parse
or validation errors.`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(args[0])
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(
		&validateProfile,
		"profile",
		"",
		"Force this profile by name instead of matching file patterns",
	)
}

// =============================================================================
// VALIDATION
// =============================================================================

// runValidate parses and validates one file, printing all findings.
func runValidate(path string) error {
	mainConfig, profiles, err := loadConfiguration()
	if err != nil {
		return err
	}

	var profile *config.DialectProfile
	if validateProfile != "" {
		p, ok := profiles[validateProfile]
		if !ok {
			return fmt.Errorf("profile %q is not defined", validateProfile)
		}
		profile = p
	} else {
		profile = config.MatchProfile(profiles, path)
		if profile == nil {
			return fmt.Errorf("no profile matches %s", path)
		}
	}

	fmt.Printf("Validating %s against profile %q\n", path, profile.Name)

	// Parse without skipping defective lines so every problem is visible.
	strict := *mainConfig
	strict.ContinueOnError = false

	conv := converter.New(path, profile, &strict)
	if !verbose {
		conv.SetLogger(&quietLogger{})
	}
	var diagnostics record.Collector
	var stats converter.ProcessingStats
	lines, err := conv.ParseFile(&diagnostics, &stats)
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	for _, d := range diagnostics.Diagnostics {
		fmt.Printf("diagnostic [%s]: %s\n", d.Code, d.Message)
	}

	validator := validation.New(profile.Validation)
	var report validation.Report
	for i, line := range lines {
		validator.ValidateLine(line, i+1, &report)
	}

	fmt.Printf("%d line(s) parsed, %d diagnostic(s)\n", stats.LinesParsed, len(diagnostics.Diagnostics))
	if len(report.Issues) == 0 {
		fmt.Println("Validation passed.")
		return nil
	}

	fmt.Println(report.Summary())
	if report.HasErrors() {
		return fmt.Errorf("validation failed with %d error(s)", report.ErrorCount())
	}
	fmt.Println("Validation passed with warnings.")
	return nil
}
