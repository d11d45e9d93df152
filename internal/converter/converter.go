// =============================================================================
// CSV Toolkit - Converter Module
// =============================================================================
//
// This module contains the core conversion logic. It orchestrates the entire
// pipeline for a single file, from line parsing to output generation.
//
// CONVERSION PIPELINE:
//   1. Read the input file line by line
//   2. Parse each line with the profile's dialect and locale
//   3. Apply transformation rules to each field
//   4. Validate the parsed data
//   5. Generate the output document (XML or XLSX)
//   6. Write the output file
//   7. Archive the processed input file
//
// ERROR HANDLING:
//   A line that fails to tokenize is a strict positional error. Depending on
//   ContinueOnError it is either skipped with a warning or aborts the file.
//
// =============================================================================

package converter

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/DSchuppelius/go-csv-toolkit/internal/config"
	"github.com/DSchuppelius/go-csv-toolkit/internal/formats"
	"github.com/DSchuppelius/go-csv-toolkit/internal/inference"
	"github.com/DSchuppelius/go-csv-toolkit/internal/record"
	"github.com/DSchuppelius/go-csv-toolkit/internal/validation"
	"github.com/DSchuppelius/go-csv-toolkit/internal/xlsxwriter"
	"github.com/DSchuppelius/go-csv-toolkit/internal/xmlwriter"
	"github.com/DSchuppelius/go-csv-toolkit/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// Profile is the name of the dialect profile that was applied.
	Profile string

	// OutputFile is the path to the generated file.
	// This is empty if processing failed.
	OutputFile string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	// This is nil if processing was successful.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// LinesRead is the number of physical lines read from the input.
	LinesRead int

	// LinesParsed is the number of lines that parsed cleanly.
	LinesParsed int

	// LinesSkipped is the number of defective lines skipped under
	// ContinueOnError.
	LinesSkipped int

	// Diagnostics is the number of parser diagnostics emitted, e.g.
	// unescaped enclosures or forced-text markers.
	Diagnostics int

	// ValidationErrors is the number of validation errors encountered.
	ValidationErrors int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter handles the conversion of a single delimited-text file.
type Converter struct {
	// inputPath is the path to the input file.
	inputPath string

	// profile is the matched dialect profile.
	profile *config.DialectProfile

	// mainConfig is the main application configuration.
	mainConfig *config.MainConfig

	// logger is used for logging.
	logger Logger
}

// Logger is an interface for logging.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Converter instance.
//
// PARAMETERS:
//   - inputPath: The path to the input file.
//   - profile: The dialect profile to apply.
//   - mainConfig: The main application configuration.
func New(inputPath string, profile *config.DialectProfile, mainConfig *config.MainConfig) *Converter {
	return &Converter{
		inputPath:  inputPath,
		profile:    profile,
		mainConfig: mainConfig,
		logger:     &defaultLogger{},
	}
}

// SetLogger replaces the default logger.
func (c *Converter) SetLogger(logger Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline for the file.
//
// RETURNS:
//   - A Result struct containing the outcome of the processing.
func (c *Converter) Run() Result {
	startTime := time.Now()
	result := Result{
		FilePath: c.inputPath,
		Profile:  c.profile.Name,
		Success:  false,
	}

	c.logger.Info("Processing file: %s (profile %s)", c.inputPath, c.profile.Name)

	// =========================================================================
	// STEP 1 + 2: READ AND PARSE
	// =========================================================================
	// Read the input line by line and parse each line with the profile's
	// dialect. Parser diagnostics are collected across the whole file.

	var diagnostics record.Collector
	lines, err := c.ParseFile(&diagnostics, &result.Stats)
	if err != nil {
		result.Error = err
		return result
	}

	result.Stats.Diagnostics = len(diagnostics.Diagnostics)
	for _, d := range diagnostics.Diagnostics {
		c.logger.Warn("Parser diagnostic [%s]: %s", d.Code, d.Message)
	}
	c.logger.Debug("Parsed %d lines (%d skipped)", result.Stats.LinesParsed, result.Stats.LinesSkipped)

	// =========================================================================
	// STEP 3: APPLY TRANSFORMATION RULES
	// =========================================================================
	// Apply the profile's transformation rules to each field.

	transformer := NewTransformer(c.profile.Transformations)
	for i, line := range lines {
		if err := transformer.TransformLine(line); err != nil {
			result.Error = fmt.Errorf("line %d: %w", i+1, err)
			return result
		}
	}

	c.logger.Debug("Applied transformation rules")

	// =========================================================================
	// STEP 4: VALIDATE DATA
	// =========================================================================
	// Validate the parsed lines against the profile's rules.

	validator := validation.New(c.profile.Validation)
	var report validation.Report
	for i, line := range lines {
		validator.ValidateLine(line, i+1, &report)
	}
	result.Stats.ValidationErrors = report.ErrorCount()

	if len(report.Issues) > 0 {
		for _, issue := range report.Issues {
			c.logger.Warn("Validation issue: [%s] %s", issue.Severity, issue.Error())
		}
		if report.HasErrors() && !c.mainConfig.ContinueOnError {
			result.Error = fmt.Errorf("validation failed with %d errors", report.ErrorCount())
			return result
		}
	}

	c.logger.Debug("Validation complete with %d errors", report.ErrorCount())

	// =========================================================================
	// STEP 5 + 6: GENERATE AND WRITE OUTPUT
	// =========================================================================

	outputPath, err := c.writeOutput(lines)
	if err != nil {
		result.Error = fmt.Errorf("failed to write output: %w", err)
		return result
	}

	result.OutputFile = outputPath
	c.logger.Info("Wrote output to: %s", outputPath)

	// =========================================================================
	// STEP 7: ARCHIVE THE INPUT FILE
	// =========================================================================

	fm := utils.NewFileManager(c.mainConfig.InputDir, c.mainConfig.OutputDir, c.mainConfig.ArchiveDir)
	if _, err := fm.ArchiveInputFile(c.inputPath); err != nil {
		// Log the error but don't fail the processing.
		c.logger.Warn("Failed to archive input file: %v", err)
	}

	// =========================================================================
	// COMPLETE
	// =========================================================================

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)

	return result
}

// =============================================================================
// PARSING
// =============================================================================

// ParseFile reads and parses the whole input file under the profile's
// dialect. Header rows are skipped; for the DATEV format the header line is
// parsed and used to enforce the data-line field count.
func (c *Converter) ParseFile(diagnostics *record.Collector, stats *ProcessingStats) ([]*record.Line, error) {
	file, err := os.Open(c.inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	locale, ok := inference.LocaleByName(c.profile.Locale)
	if !ok {
		return nil, fmt.Errorf("unknown locale %q", c.profile.Locale)
	}

	var (
		lines       []*record.Line
		datevHeader *formats.Header
		lineNo      int
		headerSkip  = c.profile.HeaderRows
	)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		lineNo++
		stats.LinesRead++
		text := scanner.Text()

		// The DATEV header is the first line of the file.
		if c.profile.Format == config.FormatDatev && lineNo == 1 {
			header, err := formats.ParseHeader(text, diagnostics.Report)
			if err != nil {
				return nil, fmt.Errorf("line 1: %w", err)
			}
			datevHeader = header
			c.logger.Debug("DATEV header: %s v%d, category %d (%s)",
				header.Marker(), header.Version(), header.Category(), header.FormatName())
			continue
		}

		// Plain column-header rows are parsed but not kept.
		if headerSkip > 0 {
			headerSkip--
			continue
		}

		var (
			line     *record.Line
			parseErr error
		)
		if c.profile.Format == config.FormatDatev {
			line, parseErr = formats.ParseDataLine(text, datevHeader, diagnostics.Report)
		} else {
			factory := record.DefaultFactory{Locale: locale, Report: diagnostics.Report}
			line, parseErr = record.FromString(text, c.profile.Delimiter, c.profile.Enclosure, factory)
		}

		if parseErr != nil {
			if c.mainConfig.ContinueOnError {
				stats.LinesSkipped++
				c.logger.Warn("Skipping line %d: %v", lineNo, parseErr)
				continue
			}
			return nil, fmt.Errorf("line %d: %w", lineNo, parseErr)
		}

		stats.LinesParsed++
		lines = append(lines, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	return lines, nil
}

// =============================================================================
// OUTPUT
// =============================================================================

// writeOutput generates the output document and writes it to the output
// directory under a generated name.
func (c *Converter) writeOutput(lines []*record.Line) (string, error) {
	extension := ".xml"
	if c.profile.OutputFormat == config.OutputXLSX {
		extension = ".xlsx"
	}

	fileName := utils.GenerateOutputFileName(c.mainConfig.OutputNamePattern, extension, map[string]string{
		"original": utils.BaseWithoutExt(c.inputPath),
		"profile":  c.profile.Name,
	})
	outputPath := filepath.Join(c.mainConfig.OutputDir, fileName)

	if err := os.MkdirAll(c.mainConfig.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	switch c.profile.OutputFormat {
	case config.OutputXLSX:
		options := xlsxwriter.DefaultOptions()
		if err := xlsxwriter.WriteWithOptions(outputPath, lines, options); err != nil {
			return "", err
		}

	default:
		options := xmlwriter.DefaultGenerateOptions()
		options.RootAttributes["profile"] = c.profile.Name
		options.RootAttributes["source"] = filepath.Base(c.inputPath)
		options.TrimValues = c.profile.TrimOutput
		doc, err := xmlwriter.GenerateWithOptions(lines, options)
		if err != nil {
			return "", err
		}
		if err := os.WriteFile(outputPath, doc, 0644); err != nil {
			return "", fmt.Errorf("failed to write file: %w", err)
		}
	}

	return outputPath, nil
}

// =============================================================================
// DEFAULT LOGGER
// =============================================================================

// defaultLogger is a simple logger that prints to stdout.
type defaultLogger struct{}

func (l *defaultLogger) Debug(msg string, args ...interface{}) {
	fmt.Printf("[DEBUG] "+msg+"\n", args...)
}

func (l *defaultLogger) Info(msg string, args ...interface{}) {
	fmt.Printf("[INFO] "+msg+"\n", args...)
}

func (l *defaultLogger) Warn(msg string, args ...interface{}) {
	fmt.Printf("[WARN] "+msg+"\n", args...)
}

func (l *defaultLogger) Error(msg string, args ...interface{}) {
	fmt.Printf("[ERROR] "+msg+"\n", args...)
}
