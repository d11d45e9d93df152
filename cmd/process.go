// =============================================================================
// CSV Toolkit - Process Command
// =============================================================================
//
// This file defines the 'process' command, which converts the files in the
// input directory according to their dialect profiles.
//
// COMMAND USAGE:
//   csvtoolkit process [flags]
//
// FLAGS:
//   --file     : Process only this one file instead of scanning the input dir
//   --profile  : Force a specific profile instead of pattern matching
//
// PROCESSING PIPELINE:
//   1. Load configuration and dialect profiles
//   2. Discover input files matching the profiles' patterns
//   3. For each file:
//      a. Parse under the matched profile's dialect and locale
//      b. Apply transformation rules
//      c. Validate
//      d. Write the XML or XLSX output
//      e. Archive the input file
//   4. Print a summary
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/DSchuppelius/go-csv-toolkit/internal/config"
	"github.com/DSchuppelius/go-csv-toolkit/internal/converter"
	"github.com/DSchuppelius/go-csv-toolkit/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// processFile restricts processing to a single file.
var processFile string

// processProfile forces a profile by name instead of pattern matching.
var processProfile string

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process input files and convert them to XML or XLSX",
	Long: `The process command scans the input directory for files, matches them to
their dialect profile by file name pattern, and converts them to the output
format the profile selects.

On successful processing:
  - The generated output is placed in the output directory
  - The original file is moved to the archive directory

On error:
  - The original file remains in the input directory
  - Processing continues for other files`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the process command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(
		&processFile,
		"file",
		"",
		"Process only this file instead of scanning the input directory",
	)

	processCmd.Flags().StringVar(
		&processProfile,
		"profile",
		"",
		"Force this profile by name instead of matching file patterns",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess orchestrates the conversion of all discovered files.
func runProcess() error {
	startTime := time.Now()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	fmt.Println("=== CSV Toolkit ===")
	fmt.Println("Loading configuration...")

	mainConfig, profiles, err := loadConfiguration()
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		return fmt.Errorf("no dialect profiles found in %s", mainConfig.ProfilesDir)
	}

	fmt.Printf("Loaded %d profile(s)\n", len(profiles))

	// =========================================================================
	// STEP 2: DISCOVER INPUT FILES
	// =========================================================================

	fm := utils.NewFileManager(mainConfig.InputDir, mainConfig.OutputDir, mainConfig.ArchiveDir)
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	var inputFiles []string
	if processFile != "" {
		if !utils.FileExists(processFile) {
			return fmt.Errorf("file %s does not exist", processFile)
		}
		inputFiles = []string{processFile}
	} else {
		var patterns []string
		for _, profile := range profiles {
			patterns = append(patterns, profile.FilePatterns...)
		}
		inputFiles, err = fm.DiscoverInputFiles(patterns...)
		if err != nil {
			return err
		}
	}

	if len(inputFiles) == 0 {
		fmt.Println("No matching files found in the input directory.")
		return nil
	}

	fmt.Printf("Found %d file(s) to process\n", len(inputFiles))

	// =========================================================================
	// STEP 3: PROCESS FILES
	// =========================================================================
	// Files are processed sequentially in discovery order so that the
	// summary is deterministic.

	var successCount, errorCount int

	for _, file := range inputFiles {
		profile, err := selectProfile(profiles, file)
		if err != nil {
			errorCount++
			fmt.Printf("  FAIL %s: %v\n", filepath.Base(file), err)
			continue
		}

		conv := converter.New(file, profile, mainConfig)
		if !verbose {
			conv.SetLogger(&quietLogger{})
		}
		result := conv.Run()
		if result.Success {
			successCount++
			fmt.Printf("  OK   %s -> %s (%d lines", filepath.Base(file), result.OutputFile, result.Stats.LinesParsed)
			if result.Stats.LinesSkipped > 0 {
				fmt.Printf(", %d skipped", result.Stats.LinesSkipped)
			}
			if result.Stats.ValidationErrors > 0 {
				fmt.Printf(", %d validation errors", result.Stats.ValidationErrors)
			}
			fmt.Println(")")
		} else {
			errorCount++
			fmt.Printf("  FAIL %s: %v\n", filepath.Base(file), result.Error)
		}
	}

	// =========================================================================
	// STEP 4: PRINT SUMMARY
	// =========================================================================

	elapsed := time.Since(startTime)
	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Total files:     %d\n", len(inputFiles))
	fmt.Printf("Successful:      %d\n", successCount)
	fmt.Printf("Errors:          %d\n", errorCount)
	fmt.Printf("Time elapsed:    %s\n", elapsed)

	if errorCount > 0 {
		return fmt.Errorf("%d file(s) failed", errorCount)
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// quietLogger suppresses debug and info output so that the summary stays
// readable. Warnings and errors always print.
type quietLogger struct{}

func (l *quietLogger) Debug(msg string, args ...interface{}) {}
func (l *quietLogger) Info(msg string, args ...interface{})  {}

func (l *quietLogger) Warn(msg string, args ...interface{}) {
	fmt.Printf("  WARN "+msg+"\n", args...)
}

func (l *quietLogger) Error(msg string, args ...interface{}) {
	fmt.Printf("  ERROR "+msg+"\n", args...)
}

// selectProfile resolves the profile for a file, honoring the --profile
// override.
func selectProfile(profiles map[string]*config.DialectProfile, file string) (*config.DialectProfile, error) {
	if processProfile != "" {
		profile, ok := profiles[processProfile]
		if !ok {
			return nil, fmt.Errorf("profile %q is not defined", processProfile)
		}
		return profile, nil
	}
	profile := config.MatchProfile(profiles, file)
	if profile == nil {
		return nil, fmt.Errorf("no profile matches the file name")
	}
	return profile, nil
}
