// =============================================================================
// CSV Toolkit - Transformation Engine
// =============================================================================
//
// This module applies a profile's transformation rules to parsed lines
// before validation and output.
//
// TRANSFORMATION TYPES:
//   - String manipulations (trim, case conversion, replace)
//   - Zero-padding of identifiers
//   - Date layout conversions
//
// Transformations mutate field values in place. A transformed value is
// re-interpreted through type inference, with two exceptions: zero-padded
// identifiers are pinned as text (re-inference would strip the padding),
// and date reformatting rewrites the retained layout directly.
//
// =============================================================================

package converter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/DSchuppelius/go-csv-toolkit/internal/config"
	"github.com/DSchuppelius/go-csv-toolkit/internal/inference"
	"github.com/DSchuppelius/go-csv-toolkit/internal/record"
)

// =============================================================================
// TRANSFORMER
// =============================================================================

// Transformer applies column transformations to parsed lines.
type Transformer struct {
	rules []config.TransformationRule
}

// NewTransformer creates a new Transformer with the given rules.
func NewTransformer(rules []config.TransformationRule) *Transformer {
	return &Transformer{
		rules: rules,
	}
}

// TransformLine applies all matching rules to the line's fields in place.
// Rules referencing columns the line does not have are skipped.
func (t *Transformer) TransformLine(line *record.Line) error {
	for _, rule := range t.rules {
		field, ok := line.Field(rule.Column)
		if !ok {
			continue
		}
		for _, action := range rule.Actions {
			if err := ApplyTransformation(field, action); err != nil {
				return fmt.Errorf("column %d, transformation %q: %w", rule.Column, action.Type, err)
			}
		}
	}
	return nil
}

// =============================================================================
// TRANSFORMATION FUNCTIONS
// =============================================================================

// ApplyTransformation applies a single transformation action to a field.
//
// SUPPORTED TRANSFORMATIONS:
//   See the switch statement below for all supported transformation types.
//
// CUSTOMIZATION:
//   Add new transformation types by adding cases to this switch statement.
func ApplyTransformation(field *record.Field, action config.TransformationAction) error {
	switch action.Type {

	// =========================================================================
	// STRING MANIPULATIONS
	// =========================================================================

	case "trim":
		// Remove leading and trailing whitespace.
		field.SetValue(strings.TrimSpace(field.Value()))
		return nil

	case "uppercase":
		// Convert to uppercase.
		field.SetValue(strings.ToUpper(field.Value()))
		return nil

	case "lowercase":
		// Convert to lowercase.
		field.SetValue(strings.ToLower(field.Value()))
		return nil

	case "replace":
		// Replace a substring with another.
		//
		// EXAMPLE:
		//   Input: "DE-1234"
		//   Action: replace with find "DE-" and value ""
		//   Output: "1234"
		if action.Find == "" {
			return fmt.Errorf("replace needs a find parameter")
		}
		field.SetValue(strings.ReplaceAll(field.Value(), action.Find, action.Value))
		return nil

	// =========================================================================
	// IDENTIFIER FORMATTING
	// =========================================================================

	case "pad_zeros_to_length":
		// Pad with leading zeros to a specific length.
		//
		// EXAMPLE:
		//   Input: "42"
		//   Action: pad_zeros_to_length with value "6"
		//   Output: "000042"
		//
		// USE CASE: Account numbers with a fixed width.
		// The padded value is pinned as text, otherwise re-inference
		// would read it as a number and drop the padding again.
		length, err := strconv.Atoi(action.Value)
		if err != nil || length < 1 {
			return fmt.Errorf("pad_zeros_to_length needs a positive length, got %q", action.Value)
		}
		field.SetTypedValue(inference.Text(padLeft(field.Value(), length, '0')))
		return nil

	// =========================================================================
	// DATE CONVERSIONS
	// =========================================================================

	case "format_date":
		// Rewrite the retained date layout of an inferred date value.
		//
		// EXAMPLE:
		//   Input: "31.12.2023" (inferred under the German locale)
		//   Action: format_date with value "2006-01-02"
		//   Output: "2023-12-31"
		if action.Value == "" {
			return fmt.Errorf("format_date needs a target layout")
		}
		dt, ok := field.TypedValue().(inference.DateTime)
		if !ok {
			return fmt.Errorf("value %q is not a date", field.Value())
		}
		field.SetTypedValue(inference.DateTime{Value: dt.Value, Layout: action.Value})
		return nil

	default:
		return fmt.Errorf("unknown transformation type %q", action.Type)
	}
}

// padLeft pads a string with a character on the left to reach the target length.
func padLeft(s string, length int, padChar rune) string {
	if len(s) >= length {
		return s
	}
	return strings.Repeat(string(padChar), length-len(s)) + s
}
