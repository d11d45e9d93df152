// =============================================================================
// CSV Toolkit - Validation Engine
// =============================================================================
//
// This module validates parsed lines against the rules of a dialect profile,
// including:
//   - Field count bounds
//   - Required field checks
//   - Per-column type validation against the inferred value kinds
//   - Exact date layout checks
//   - Uniform quoting across a line
//
// ERROR HANDLING:
//   - Issues are collected, not thrown immediately
//   - Each issue includes detailed context (row, column, value)
//   - Issues can be warnings (continue processing) or errors
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/DSchuppelius/go-csv-toolkit/internal/config"
	"github.com/DSchuppelius/go-csv-toolkit/internal/record"
)

// =============================================================================
// ISSUE TYPES
// =============================================================================

// Severity levels of a validation issue.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Issue represents a single validation finding.
type Issue struct {
	// Severity is SeverityError or SeverityWarning.
	Severity string

	// Row is the 1-based data row number the issue was found on.
	Row int

	// Column is the 0-based field index, or -1 for line-level issues.
	Column int

	// Value is the offending field value, when one exists.
	Value string

	// Rule names the violated rule, e.g. "required" or "type".
	Rule string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface for single-issue reporting.
func (i Issue) Error() string {
	if i.Column >= 0 {
		return fmt.Sprintf("row %d, column %d: %s", i.Row, i.Column, i.Message)
	}
	return fmt.Sprintf("row %d: %s", i.Row, i.Message)
}

// Report collects the issues found while validating a file.
type Report struct {
	Issues []Issue
}

// HasErrors reports whether any issue carries error severity.
func (r *Report) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of error-severity issues.
func (r *Report) ErrorCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Summary renders the report as one line per issue.
func (r *Report) Summary() string {
	if len(r.Issues) == 0 {
		return "no issues"
	}
	lines := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		lines = append(lines, fmt.Sprintf("[%s] %s", issue.Severity, issue.Error()))
	}
	return strings.Join(lines, "\n")
}

func (r *Report) add(issue Issue) {
	r.Issues = append(r.Issues, issue)
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Validator checks parsed lines against one profile's validation rules.
type Validator struct {
	rules config.ValidationRules
}

// New creates a Validator for a profile's rules.
func New(rules config.ValidationRules) *Validator {
	return &Validator{rules: rules}
}

// ValidateLine checks one data line and appends its findings to the report.
// The row number is 1-based and used only for reporting.
func (v *Validator) ValidateLine(line *record.Line, row int, report *Report) {
	v.checkFieldCount(line, row, report)
	v.checkUniformQuoting(line, row, report)

	for _, rule := range v.rules.Columns {
		field, ok := line.Field(rule.Column)
		if !ok {
			// A missing column is already covered by the field count
			// bounds when they are configured.
			if v.rules.MinFields == 0 && v.rules.MaxFields == 0 {
				report.add(Issue{
					Severity: SeverityError,
					Row:      row,
					Column:   rule.Column,
					Rule:     "column",
					Message:  fmt.Sprintf("line has no column %d", rule.Column),
				})
			}
			continue
		}
		v.checkColumn(field, rule, row, report)
	}
}

func (v *Validator) checkFieldCount(line *record.Line, row int, report *Report) {
	n := line.CountFields()
	if v.rules.MinFields > 0 && n < v.rules.MinFields {
		report.add(Issue{
			Severity: SeverityError,
			Row:      row,
			Column:   -1,
			Rule:     "min_fields",
			Message:  fmt.Sprintf("line has %d fields, want at least %d", n, v.rules.MinFields),
		})
	}
	if v.rules.MaxFields > 0 && n > v.rules.MaxFields {
		report.add(Issue{
			Severity: SeverityError,
			Row:      row,
			Column:   -1,
			Rule:     "max_fields",
			Message:  fmt.Sprintf("line has %d fields, want at most %d", n, v.rules.MaxFields),
		})
	}
}

func (v *Validator) checkUniformQuoting(line *record.Line, row int, report *Report) {
	if !v.rules.UniformQuoting {
		return
	}
	min, max, ok := line.EnclosureRepeatRange(false)
	if ok && min != max {
		report.add(Issue{
			Severity: SeverityWarning,
			Row:      row,
			Column:   -1,
			Rule:     "uniform_quoting",
			Message:  fmt.Sprintf("enclosure repeat varies between %d and %d", min, max),
		})
	}
}

func (v *Validator) checkColumn(field *record.Field, rule config.ColumnRule, row int, report *Report) {
	if rule.Required && field.IsNull() {
		report.add(Issue{
			Severity: SeverityError,
			Row:      row,
			Column:   rule.Column,
			Rule:     "required",
			Message:  "required field is null",
		})
		return
	}
	if rule.Type == "" || field.IsNull() {
		return
	}

	ok := false
	switch rule.Type {
	case "text":
		ok = field.IsString()
	case "int":
		ok = field.IsInt()
	case "float":
		// Integers are acceptable where floats are expected.
		ok = field.IsFloat() || field.IsInt()
	case "bool":
		ok = field.IsBool()
	case "datetime":
		if rule.Layout != "" {
			ok = field.IsDateTime(rule.Layout)
		} else {
			ok = field.IsDateTime()
		}
	}

	if !ok {
		want := rule.Type
		if rule.Layout != "" {
			want = fmt.Sprintf("%s (%s)", rule.Type, rule.Layout)
		}
		report.add(Issue{
			Severity: SeverityError,
			Row:      row,
			Column:   rule.Column,
			Value:    field.Value(),
			Rule:     "type",
			Message:  fmt.Sprintf("value %q is not of type %s", field.Value(), want),
		})
	}
}
