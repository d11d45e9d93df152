// =============================================================================
// CSV Toolkit - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing all configuration files.
// It handles both the main application configuration and the dialect profiles
// that describe how each family of input files is parsed.
//
// CONFIGURATION FILES:
//   1. Main Config (config.yaml): Global application settings
//   2. Dialect Profiles (profiles/*.yaml): Per-file-family parsing rules
//
// ARCHITECTURE:
//   The configuration system is designed to be:
//   - Modular: Each file family has its own profile
//   - Extensible: New profiles can be added without code changes
//   - Validated: All configurations are validated on load
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/DSchuppelius/go-csv-toolkit/internal/inference"
)

// Format names accepted in a profile's "format" field.
const (
	FormatGeneric = "generic"
	FormatDatev   = "datev"
)

// Output format names accepted in a profile's "output_format" field.
const (
	OutputXML  = "xml"
	OutputXLSX = "xlsx"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
// This is loaded from the main config.yaml file.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is the directory where input delimited-text files are placed.
	// The application will scan this directory for files to process.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir is the directory where converted files are placed.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// ArchiveDir is the directory where processed input files are moved.
	// Files are only moved here after successful processing.
	// Default: "./archive"
	ArchiveDir string `yaml:"archive_dir"`

	// ProfilesDir is the directory containing dialect profiles.
	// Each YAML file in this directory describes one family of input files.
	// Default: "./profiles"
	ProfilesDir string `yaml:"profiles_dir"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogFile is the path to the application log file.
	// Default: "./logs/csvtoolkit.log"
	LogFile string `yaml:"log_file"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputNamePattern defines the format for output file names.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {original}  - Input file name without extension
	//   {profile}   - Name of the matched dialect profile
	//
	// Default: "{original}_{uuid}"
	// The extension is appended per output format.
	OutputNamePattern string `yaml:"output_name_pattern"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// ContinueOnError determines whether a file with a defective line is
	// still processed (the line is skipped) or aborted.
	// Default: true
	ContinueOnError bool `yaml:"continue_on_error"`
}

// =============================================================================
// DIALECT PROFILE STRUCTURE
// =============================================================================

// DialectProfile holds the parsing and output rules for one family of
// input files. A file is matched to a profile by its name patterns.
type DialectProfile struct {
	// Name is the human-readable name of the profile.
	// This is used in logs, error messages and output file names.
	Name string `yaml:"name"`

	// FilePatterns is a list of glob patterns to match input files.
	// If a file name matches any of these patterns, this profile is used.
	FilePatterns []string `yaml:"file_patterns"`

	// =========================================================================
	// DIALECT SETTINGS
	// =========================================================================

	// Delimiter separates fields. May be longer than one character.
	// Default: ";"
	Delimiter string `yaml:"delimiter"`

	// Enclosure is the quote character. Empty disables quote handling
	// entirely, which makes every enclosure character literal content.
	Enclosure string `yaml:"enclosure"`

	// Locale selects the number and date conventions used for typed-value
	// inference. Valid values: "de_DE", "en_US" (short forms "de", "en").
	// Default: "de_DE"
	Locale string `yaml:"locale"`

	// Format selects the line format. "generic" parses free-form lines,
	// "datev" expects a DATEV export with its header line.
	// Default: "generic"
	Format string `yaml:"format"`

	// HeaderRows is the number of leading rows that carry column names
	// instead of data. They are parsed but not validated as data.
	// Default: 0
	HeaderRows int `yaml:"header_rows"`

	// OutputFormat selects the converted representation: "xml" or "xlsx".
	// Default: "xml"
	OutputFormat string `yaml:"output_format"`

	// TrimOutput renders fields without their surrounding whitespace.
	TrimOutput bool `yaml:"trim_output"`

	// =========================================================================
	// TRANSFORMATION RULES
	// =========================================================================

	// Transformations are applied to field values after parsing and before
	// validation and output, in order.
	Transformations []TransformationRule `yaml:"transformations"`

	// =========================================================================
	// VALIDATION RULES
	// =========================================================================

	// Validation constrains the parsed lines of this profile.
	Validation ValidationRules `yaml:"validation"`
}

// TransformationRule defines transformations for one column.
type TransformationRule struct {
	// Column is the 0-based field index the actions apply to.
	Column int `yaml:"column"`

	// Actions is a list of transformations applied in order.
	Actions []TransformationAction `yaml:"actions"`
}

// TransformationAction defines a single transformation action.
type TransformationAction struct {
	// Type is the type of transformation to apply.
	// Supported types:
	//   - "trim"                : Remove leading and trailing whitespace
	//   - "uppercase"           : Convert to uppercase
	//   - "lowercase"           : Convert to lowercase
	//   - "replace"             : Replace a substring with another
	//   - "pad_zeros_to_length" : Pad with leading zeros to a specific length
	//   - "format_date"         : Reformat an inferred date value
	Type string `yaml:"type"`

	// Value is the parameter for the transformation.
	// The meaning depends on the transformation type:
	//   - "replace"             : The replacement string
	//   - "pad_zeros_to_length" : The target length (as a string, e.g. "12")
	//   - "format_date"         : The target date layout (e.g. "2006-01-02")
	Value string `yaml:"value,omitempty"`

	// Find is used for "replace" transformations.
	// It specifies the substring to find.
	Find string `yaml:"find,omitempty"`
}

// ValidationRules constrains the lines parsed under a profile.
type ValidationRules struct {
	// MinFields and MaxFields bound the field count of every data line.
	// Zero means unbounded.
	MinFields int `yaml:"min_fields"`
	MaxFields int `yaml:"max_fields"`

	// UniformQuoting requires every quoted field of a line to carry the
	// same enclosure repeat count.
	UniformQuoting bool `yaml:"uniform_quoting"`

	// Columns holds per-column constraints.
	Columns []ColumnRule `yaml:"columns"`
}

// ColumnRule constrains a single column of every data line.
type ColumnRule struct {
	// Column is the 0-based field index this rule applies to.
	Column int `yaml:"column"`

	// Required rejects null fields (unquoted and empty).
	Required bool `yaml:"required"`

	// Type, when set, requires the inferred value kind.
	// Valid values: "text", "int", "float", "bool", "datetime"
	Type string `yaml:"type,omitempty"`

	// Layout, for "datetime" columns, requires this exact date layout.
	Layout string `yaml:"layout,omitempty"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read or parsed.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	// Read the configuration file.
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse the YAML.
	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply default values.
	applyMainConfigDefaults(&config)

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.ArchiveDir == "" {
		config.ArchiveDir = "./archive"
	}
	if config.ProfilesDir == "" {
		config.ProfilesDir = "./profiles"
	}
	if config.LogFile == "" {
		config.LogFile = "./logs/csvtoolkit.log"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.OutputNamePattern == "" {
		config.OutputNamePattern = "{original}_{uuid}"
	}
}

// LoadProfiles loads all dialect profiles from a directory.
//
// PARAMETERS:
//   - profilesDir: The path to the directory containing profile files.
//
// RETURNS:
//   - A map of profiles, keyed by profile name.
//   - An error if the directory cannot be read or any file is invalid.
func LoadProfiles(profilesDir string) (map[string]*DialectProfile, error) {
	profiles := make(map[string]*DialectProfile)

	// Find all YAML files in the profiles directory.
	files, err := filepath.Glob(filepath.Join(profilesDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list profile files: %w", err)
	}

	// Also check for .yml extension.
	ymlFiles, err := filepath.Glob(filepath.Join(profilesDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list profile files: %w", err)
	}
	files = append(files, ymlFiles...)

	// Load each profile file.
	for _, file := range files {
		profile, err := LoadProfile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}

		// Use the profile name as the key.
		// If no name is specified, use the file name.
		key := profile.Name
		if key == "" {
			key = filepath.Base(file)
			profile.Name = key
		}

		profiles[key] = profile
	}

	return profiles, nil
}

// LoadProfile loads and validates a single dialect profile file.
func LoadProfile(filePath string) (*DialectProfile, error) {
	// Read the profile file.
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// Parse the YAML.
	var profile DialectProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse file: %w", err)
	}

	// Apply default values.
	ApplyProfileDefaults(&profile)

	// Validate the profile.
	if err := ValidateProfile(&profile); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	return &profile, nil
}

// ApplyProfileDefaults sets default values for a dialect profile.
func ApplyProfileDefaults(profile *DialectProfile) {
	if profile.Delimiter == "" {
		profile.Delimiter = ";"
	}
	if profile.Locale == "" {
		profile.Locale = "de_DE"
	}
	if profile.Format == "" {
		profile.Format = FormatGeneric
	}
	if profile.OutputFormat == "" {
		profile.OutputFormat = OutputXML
	}
}

// ValidateProfile checks a dialect profile for contradictory settings.
func ValidateProfile(profile *DialectProfile) error {
	if profile.Delimiter == "" {
		return fmt.Errorf("profile %q has an empty delimiter", profile.Name)
	}
	if _, ok := inference.LocaleByName(profile.Locale); !ok {
		return fmt.Errorf("profile %q references unknown locale %q", profile.Name, profile.Locale)
	}
	switch profile.Format {
	case FormatGeneric, FormatDatev:
	default:
		return fmt.Errorf("profile %q references unknown format %q", profile.Name, profile.Format)
	}
	switch profile.OutputFormat {
	case OutputXML, OutputXLSX:
	default:
		return fmt.Errorf("profile %q references unknown output format %q", profile.Name, profile.OutputFormat)
	}
	if profile.Validation.MaxFields != 0 && profile.Validation.MinFields > profile.Validation.MaxFields {
		return fmt.Errorf("profile %q has min_fields > max_fields", profile.Name)
	}
	for _, col := range profile.Validation.Columns {
		if col.Column < 0 {
			return fmt.Errorf("profile %q has a negative column index", profile.Name)
		}
		switch col.Type {
		case "", "text", "int", "float", "bool", "datetime":
		default:
			return fmt.Errorf("profile %q column %d has unknown type %q", profile.Name, col.Column, col.Type)
		}
	}
	return nil
}

// MatchProfile returns the first profile whose file patterns match the
// given file name, or nil when no profile matches. Profiles are tried in
// name order so that matching is deterministic.
func MatchProfile(profiles map[string]*DialectProfile, fileName string) *DialectProfile {
	base := filepath.Base(fileName)
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, pattern := range profiles[name].FilePatterns {
			if ok, err := filepath.Match(pattern, base); err == nil && ok {
				return profiles[name]
			}
		}
	}
	return nil
}
