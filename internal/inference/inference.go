// =============================================================================
// CSV Toolkit - Typed-Value Inference
// =============================================================================
//
// This module converts a trimmed raw substring into a typed value using a
// selected locale. Inference is lenient: input that matches no numeric,
// boolean, or date pattern degrades to Text without error.
//
// DETECTION ORDER:
//   1. Integer  - digits with optional sign and locale grouping separators
//   2. Float    - integer part plus locale decimal separator and digits
//   3. Boolean  - locale vocabulary (true/false/ja/nein/...)
//   4. DateTime - ordered locale layouts, exact reproduction preferred
//   5. Text     - everything else
//
// Non-canonical numeric and date representations retain a format template so
// the original textual shape can be reproduced on output (see value.go).
//
// =============================================================================

package inference

import (
	"strconv"
	"strings"
	"time"
)

// ForcedTextMarker is the apostrophe some spreadsheet tools prepend to keep a
// numeric-looking cell as literal text.
const ForcedTextMarker = '\''

// Infer converts text into a typed value using the locale's number, boolean,
// and date conventions. It never fails; unrecognized input becomes Text. The
// caller is expected to pass trimmed text.
func Infer(text string, loc Locale) Value {
	if text == "" {
		return Text("")
	}
	if v, ok := inferInt(text, loc); ok {
		return v
	}
	if v, ok := inferFloat(text, loc); ok {
		return v
	}
	if v, ok := inferBool(text, loc); ok {
		return v
	}
	if v, ok := inferDateTime(text, loc); ok {
		return v
	}
	return Text(text)
}

// StripForcedTextMarker removes a leading spreadsheet text marker when the
// remainder is an unambiguous (canonical) number for the locale. In every
// other case the marker stays literal content and the input is returned
// unchanged. The second return value reports whether stripping happened.
func StripForcedTextMarker(text string, loc Locale) (string, bool) {
	if len(text) < 2 || rune(text[0]) != ForcedTextMarker {
		return text, false
	}
	rest := text[1:]
	if !IsCanonicalNumber(rest, loc) {
		return text, false
	}
	return rest, true
}

// IsCanonicalNumber reports whether s is a number in canonical form for the
// locale: an optional minus sign, digits without leading zeros and without
// grouping separators, and optionally the locale decimal separator followed
// by at least one digit.
func IsCanonicalNumber(s string, loc Locale) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	intPart := s
	if idx := strings.IndexRune(s, loc.DecimalSep); idx >= 0 {
		intPart = s[:idx]
		frac := s[idx+len(string(loc.DecimalSep)):]
		if frac == "" || !allDigits(frac) {
			return false
		}
	}
	if intPart == "" || !allDigits(intPart) {
		return false
	}
	if len(intPart) > 1 && intPart[0] == '0' {
		return false
	}
	return true
}

// =============================================================================
// NUMBERS
// =============================================================================

func inferInt(text string, loc Locale) (Value, bool) {
	sign, body := splitSign(text)
	if body == "" {
		return nil, false
	}
	digits := body
	if strings.ContainsRune(body, loc.GroupSep) {
		var ok bool
		digits, ok = ungroup(body, loc.GroupSep)
		if !ok {
			return nil, false
		}
	} else if !allDigits(body) {
		return nil, false
	}
	n, err := strconv.ParseInt(sign+digits, 10, 64)
	if err != nil {
		return nil, false
	}
	return Int(n), true
}

func inferFloat(text string, loc Locale) (Value, bool) {
	sep := string(loc.DecimalSep)
	idx := strings.Index(text, sep)
	if idx < 0 {
		return nil, false
	}
	frac := text[idx+len(sep):]
	if frac == "" || !allDigits(frac) {
		return nil, false
	}
	sign, intPart := splitSign(text[:idx])
	grouped := false
	digits := intPart
	switch {
	case intPart == "":
		digits = "0"
	case strings.ContainsRune(intPart, loc.GroupSep):
		var ok bool
		digits, ok = ungroup(intPart, loc.GroupSep)
		if !ok {
			return nil, false
		}
		grouped = true
	case !allDigits(intPart):
		return nil, false
	}
	v, err := strconv.ParseFloat(sign+digits+"."+frac, 64)
	if err != nil {
		return nil, false
	}
	f := Float{Value: v}
	if grouped || minimalDecimalPlaces(v) != len(frac) {
		f.Template = &NumberTemplate{DecimalPlaces: len(frac)}
	}
	return f, true
}

// ungroup validates locale digit grouping (first group of one to three
// digits, every further group exactly three) and returns the bare digits.
func ungroup(s string, group rune) (string, bool) {
	parts := strings.Split(s, string(group))
	if len(parts) < 2 {
		return "", false
	}
	first := parts[0]
	if first == "" || len(first) > 3 || !allDigits(first) {
		return "", false
	}
	for _, p := range parts[1:] {
		if len(p) != 3 || !allDigits(p) {
			return "", false
		}
	}
	return strings.Join(parts, ""), true
}

// minimalDecimalPlaces counts the fractional digits of the shortest decimal
// representation of v.
func minimalDecimalPlaces(v float64) int {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	idx := strings.IndexByte(s, '.')
	if idx < 0 {
		return 0
	}
	return len(s) - idx - 1
}

func splitSign(s string) (sign, rest string) {
	if strings.HasPrefix(s, "-") {
		return "-", s[1:]
	}
	if strings.HasPrefix(s, "+") {
		return "", s[1:]
	}
	return "", s
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// =============================================================================
// BOOLEANS AND DATES
// =============================================================================

func inferBool(text string, loc Locale) (Value, bool) {
	if loc.isTrueWord(text) {
		return Bool(true), true
	}
	if loc.isFalseWord(text) {
		return Bool(false), true
	}
	return nil, false
}

// inferDateTime tries the locale layouts in order. A layout that reproduces
// the input byte-for-byte is preferred, so the retained template formats the
// value exactly as it appeared. If only a lenient match exists (Go's parser
// accepts unpadded components against padded layouts), the first one wins.
func inferDateTime(text string, loc Locale) (Value, bool) {
	if !strings.ContainsAny(text, "0123456789") {
		return nil, false
	}
	var fallback *DateTime
	for _, layout := range loc.DateLayouts {
		t, err := time.Parse(layout, text)
		if err != nil {
			continue
		}
		if t.Format(layout) == text {
			return DateTime{Value: t, Layout: layout}, true
		}
		if fallback == nil {
			fallback = &DateTime{Value: t, Layout: layout}
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return nil, false
}
