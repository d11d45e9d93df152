// =============================================================================
// CSV Toolkit - Typed Values
// =============================================================================
//
// This file defines the tagged union returned by typed-value inference. A
// Value is one of Text, Int, Float, Bool, or DateTime. Float and DateTime
// optionally carry a format template describing the textual shape of the
// source representation (decimal-place count, date layout), so that
// formatting reproduces the original style rather than a normalized one.
//
// =============================================================================

package inference

import (
	"strconv"
	"strings"
	"time"
)

// Kind identifies the variant of a Value.
type Kind int

const (
	// KindText is the fallback variant for anything not recognized as a
	// number, boolean, or date.
	KindText Kind = iota

	// KindInt is a signed 64-bit integer.
	KindInt

	// KindFloat is a 64-bit floating point number, optionally with a
	// retained decimal-place template.
	KindFloat

	// KindBool is a boolean parsed from the locale vocabulary.
	KindBool

	// KindDateTime is a point in time, optionally with the layout that
	// matched during inference.
	KindDateTime
)

// String returns the lower-case name of the kind, as used in configuration
// files and diagnostics.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindDateTime:
		return "datetime"
	default:
		return "text"
	}
}

// Value is the tagged union produced by Infer. Implementations are immutable
// value types; Format never mutates the receiver.
type Value interface {
	// Kind identifies the variant.
	Kind() Kind

	// Format renders the value as text using the given locale's separator
	// conventions and any retained format template.
	Format(loc Locale) string
}

// =============================================================================
// VARIANTS
// =============================================================================

// Text is the fallback variant; it formats verbatim.
type Text string

// Kind returns KindText.
func (Text) Kind() Kind { return KindText }

// Format returns the text unchanged.
func (t Text) Format(Locale) string { return string(t) }

// Int is a signed integer value.
type Int int64

// Kind returns KindInt.
func (Int) Kind() Kind { return KindInt }

// Format renders the integer in base 10 without grouping separators.
func (i Int) Format(Locale) string { return strconv.FormatInt(int64(i), 10) }

// NumberTemplate records the textual shape of a non-canonical float source.
type NumberTemplate struct {
	// DecimalPlaces is the number of fractional digits in the source text.
	DecimalPlaces int
}

// Float is a floating point value with an optional format template.
type Float struct {
	Value float64

	// Template is set when the source representation was not the minimal
	// decimal form (trailing fractional zeros, grouping separators). Nil
	// means the minimal representation is used on output.
	Template *NumberTemplate
}

// Kind returns KindFloat.
func (Float) Kind() Kind { return KindFloat }

// Format renders the float with the retained decimal-place count, or the
// minimal decimal representation when no template was captured. The output
// uses the locale's decimal separator and never emits grouping separators.
func (f Float) Format(loc Locale) string {
	var s string
	if f.Template != nil {
		s = strconv.FormatFloat(f.Value, 'f', f.Template.DecimalPlaces, 64)
	} else {
		s = strconv.FormatFloat(f.Value, 'f', -1, 64)
	}
	if loc.DecimalSep != 0 && loc.DecimalSep != '.' {
		s = strings.Replace(s, ".", string(loc.DecimalSep), 1)
	}
	return s
}

// Bool is a boolean value.
type Bool bool

// Kind returns KindBool.
func (Bool) Kind() Kind { return KindBool }

// Format renders the canonical boolean word of the locale.
func (b Bool) Format(loc Locale) string {
	if b {
		if len(loc.TrueWords) > 0 {
			return loc.TrueWords[0]
		}
		return "true"
	}
	if len(loc.FalseWords) > 0 {
		return loc.FalseWords[0]
	}
	return "false"
}

// CanonicalDateTimeLayout is used to format a DateTime that carries no
// retained layout, e.g. one set programmatically.
const CanonicalDateTimeLayout = "2006-01-02 15:04:05"

// DateTime is a point in time with an optional retained layout.
type DateTime struct {
	Value time.Time

	// Layout is the date layout that matched during inference. Empty means
	// no template was captured and the canonical layout applies.
	Layout string
}

// Kind returns KindDateTime.
func (DateTime) Kind() Kind { return KindDateTime }

// Format renders the timestamp with the retained layout, falling back to
// CanonicalDateTimeLayout.
func (d DateTime) Format(Locale) string {
	layout := d.Layout
	if layout == "" {
		layout = CanonicalDateTimeLayout
	}
	return d.Value.Format(layout)
}
