// =============================================================================
// CSV Toolkit - Field Entity
// =============================================================================
//
// A Field owns one delimited cell: its original raw text, its quoting
// metadata, and its typed value. Construction from raw text performs the
// quote-run analysis (pure enclosure runs, asymmetric run lengths, interior
// padding) and runs typed-value inference on unquoted content.
//
// ROUND-TRIP CONTRACT:
//   A field parsed from raw text and not mutated since reproduces that text
//   byte for byte. Mutation (SetValue, With*) invalidates the retained raw
//   text; from then on the textual form is recomputed from the typed value,
//   the enclosure repeat, and the whitespace/padding metadata.
//
// MUTATION STYLES:
//   In-place setters (SetValue, SetEnclosureRepeat) mutate the receiver and
//   exist for hot paths. The With* operations clone first and never touch
//   the receiver, so they are safe to call concurrently on a shared source
//   instance.
//
// =============================================================================

package record

import (
	"fmt"
	"strings"

	"github.com/DSchuppelius/go-csv-toolkit/internal/inference"
)

// fieldSpace is the whitespace stripped around field content. Line breaks
// are boundary characters handled by the tokenizer, not field padding.
const fieldSpace = " \t"

// Field is one delimited cell. The zero value is not usable; construct
// fields with NewField or NewValueField.
type Field struct {
	raw    string
	hasRaw bool

	quoted bool
	repeat int

	value inference.Value

	leading      string
	trailing     string
	innerPadding int

	enclosure string
	locale    inference.Locale
	report    Reporter
}

// NewField analyzes one raw field substring as produced by the tokenizer.
// Construction is lenient and never fails: text matching no quoting or value
// pattern becomes an unquoted text field. Non-fatal findings go to report;
// pass nil to discard them.
func NewField(raw, enclosure string, locale inference.Locale, report Reporter) *Field {
	if report == nil {
		report = Discard
	}
	f := &Field{enclosure: enclosure, locale: locale, report: report}
	f.parseRaw(raw)
	return f
}

// NewValueField builds a field programmatically from a typed value. It
// carries no raw text; its textual form is always recomputed.
func NewValueField(value inference.Value, quoted bool, enclosure string, locale inference.Locale, report Reporter) *Field {
	if report == nil {
		report = Discard
	}
	repeat := 0
	if quoted {
		repeat = 1
	}
	return &Field{
		quoted:    quoted,
		repeat:    repeat,
		value:     value,
		enclosure: enclosure,
		locale:    locale,
		report:    report,
	}
}

// parseRaw implements the construction order: trim, pure-run special case,
// enclosure run matching with surplus padding, then unquoted inference.
func (f *Field) parseRaw(raw string) {
	trimmed := strings.Trim(raw, fieldSpace)

	var enc byte
	if f.enclosure != "" {
		enc = f.enclosure[0]
	}

	// Pure enclosure run: the whole trimmed text is enclosure characters.
	// Interpreted as an empty quoted value; half the run sits on each side.
	if enc != 0 && trimmed != "" && enclosureRun(trimmed, 0, enc) == len(trimmed) {
		f.quoted = true
		f.repeat = len(trimmed) / 2
		f.value = inference.Text("")
		f.raw = trimmed
		f.hasRaw = true
		return
	}

	lead := enclosureRun(trimmed, 0, enc)
	trail := trailingEnclosureRun(trimmed, enc)
	repeat := lead
	if trail < repeat {
		repeat = trail
	}

	if repeat >= 1 {
		// Quoted. The repeat is the shorter run; surplus characters from
		// the longer side stay in the interior so no content is lost.
		// Outer whitespace around the runs is not part of the value.
		f.quoted = true
		f.repeat = repeat
		interior := trimmed[repeat : len(trimmed)-repeat]
		if interior != "" && strings.Trim(interior, " ") == "" {
			f.innerPadding = len(interior)
			f.value = inference.Text("")
		} else {
			f.value = inference.Text(interior)
		}
		f.raw = trimmed
		f.hasRaw = true
		return
	}

	// Unquoted: whitespace is retained separately so reconstruction without
	// trimming is lossless. A field of nothing but whitespace is recorded
	// entirely as leading whitespace.
	left := strings.TrimLeft(raw, fieldSpace)
	f.leading = raw[:len(raw)-len(left)]
	if left != "" {
		right := strings.TrimRight(raw, fieldSpace)
		f.trailing = raw[len(right):]
	}
	f.inferValue(trimmed)
	f.raw = raw
	f.hasRaw = true
}

// inferValue runs marker normalization and typed-value inference on trimmed
// unquoted content.
func (f *Field) inferValue(trimmed string) {
	clean, stripped := inference.StripForcedTextMarker(trimmed, f.locale)
	if stripped {
		f.report(Diagnostic{
			Code:    CodeForcedTextMarker,
			Message: fmt.Sprintf("stripped forced-text marker from %q", trimmed),
		})
	}
	f.value = inference.Infer(clean, f.locale)
}

// =============================================================================
// PREDICATES
// =============================================================================

// IsQuoted reports whether the field was recognized as enclosure-wrapped.
func (f *Field) IsQuoted() bool { return f.quoted }

// IsEmpty reports whether the formatted value is empty.
func (f *Field) IsEmpty() bool { return f.Value() == "" }

// IsNull reports whether the field is an empty unquoted cell, i.e. nothing
// was there at all. An empty quoted cell is empty but not null.
func (f *Field) IsNull() bool { return !f.quoted && f.Value() == "" }

// IsBlank reports whether the formatted value is empty after trimming.
func (f *Field) IsBlank() bool { return strings.Trim(f.Value(), fieldSpace) == "" }

// IsInt reports whether the typed value is an integer.
func (f *Field) IsInt() bool { return f.value.Kind() == inference.KindInt }

// IsFloat reports whether the typed value is a float.
func (f *Field) IsFloat() bool { return f.value.Kind() == inference.KindFloat }

// IsBool reports whether the typed value is a boolean.
func (f *Field) IsBool() bool { return f.value.Kind() == inference.KindBool }

// IsString reports whether the typed value is plain text.
func (f *Field) IsString() bool { return f.value.Kind() == inference.KindText }

// IsDateTime reports whether the typed value is a date/time. When a layout
// is given, it additionally requires that the value formats with exactly
// that layout.
func (f *Field) IsDateTime(layout ...string) bool {
	if f.value.Kind() != inference.KindDateTime {
		return false
	}
	if len(layout) == 0 {
		return true
	}
	dt := f.value.(inference.DateTime)
	retained := dt.Layout
	if retained == "" {
		retained = inference.CanonicalDateTimeLayout
	}
	return retained == layout[0]
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Value returns the formatted textual representation of the typed value.
// Quoted fields return their literal interior text verbatim; unquoted values
// format per their retained template and the field's locale.
func (f *Field) Value() string { return f.value.Format(f.locale) }

// TypedValue returns the tagged-union value.
func (f *Field) TypedValue() inference.Value { return f.value }

// EnclosureRepeat returns the per-side enclosure run length; 0 means
// unquoted.
func (f *Field) EnclosureRepeat() int { return f.repeat }

// LeadingWhitespace returns the whitespace stripped from the left of an
// unquoted field.
func (f *Field) LeadingWhitespace() string { return f.leading }

// TrailingWhitespace returns the whitespace stripped from the right of an
// unquoted field.
func (f *Field) TrailingWhitespace() string { return f.trailing }

// InnerPadding returns the space count of an empty quoted field whose
// interior contained only spaces.
func (f *Field) InnerPadding() int { return f.innerPadding }

// Locale returns the locale used for inference and formatting.
func (f *Field) Locale() inference.Locale { return f.locale }

// =============================================================================
// MUTATION
// =============================================================================

// SetValue replaces the field's value in place. The retained raw text and
// any captured format template are cleared. Quoted fields take the text
// literally; unquoted fields re-run whitespace capture and inference.
func (f *Field) SetValue(text string) {
	f.invalidateRaw()
	if f.quoted {
		f.value = inference.Text(text)
		f.innerPadding = 0
		return
	}
	trimmed := strings.Trim(text, fieldSpace)
	left := strings.TrimLeft(text, fieldSpace)
	f.leading = text[:len(text)-len(left)]
	f.trailing = ""
	if left != "" {
		right := strings.TrimRight(text, fieldSpace)
		f.trailing = text[len(right):]
	}
	f.inferValue(trimmed)
}

// WithValue returns a copy of the field with the value replaced; the
// receiver is not modified.
func (f *Field) WithValue(text string) *Field {
	c := f.clone()
	c.SetValue(text)
	return c
}

// SetTypedValue replaces the value with the given typed value in place,
// bypassing inference. Quoting, enclosure repeat, whitespace metadata, and
// locale are preserved; the retained raw text is cleared.
func (f *Field) SetTypedValue(value inference.Value) {
	f.invalidateRaw()
	f.value = value
}

// WithTypedValue returns a copy carrying the given typed value directly,
// bypassing inference. Quoting, enclosure repeat, whitespace metadata, and
// locale are preserved; the retained raw text is cleared.
func (f *Field) WithTypedValue(value inference.Value) *Field {
	c := f.clone()
	c.SetTypedValue(value)
	return c
}

// WithQuoted returns a copy with quoting toggled. Turning quoting on freezes
// the current formatted value as literal text; turning it off re-runs
// inference on the literal text.
func (f *Field) WithQuoted(quoted bool) *Field {
	c := f.clone()
	if quoted == f.quoted {
		return c
	}
	c.invalidateRaw()
	c.quoted = quoted
	if quoted {
		c.value = inference.Text(f.Value())
		if c.repeat < 1 {
			c.repeat = 1
		}
		return c
	}
	c.repeat = 0
	c.innerPadding = 0
	c.inferValue(strings.Trim(f.Value(), fieldSpace))
	return c
}

// SetEnclosureRepeat sets the per-side enclosure run length, clamped to a
// minimum of 0.
func (f *Field) SetEnclosureRepeat(n int) {
	if n < 0 {
		n = 0
	}
	if n != f.repeat {
		f.invalidateRaw()
	}
	f.repeat = n
}

func (f *Field) invalidateRaw() {
	f.raw = ""
	f.hasRaw = false
}

func (f *Field) clone() *Field {
	c := *f
	return &c
}

// =============================================================================
// RECONSTRUCTION
// =============================================================================

// Render reconstructs the field's textual form. An empty enclosure falls
// back to the field's own enclosure. For unquoted fields, trim selects the
// bare formatted value instead of the value with its retained whitespace;
// quoted fields ignore the flag, since outer whitespace around quotes was
// never part of the field.
func (f *Field) Render(enclosure string, trim bool) string {
	if f.quoted {
		enc := enclosure
		if enc == "" {
			enc = f.enclosure
		}
		literal := f.value.Format(f.locale)
		if enc != "" && hasUnescapedEnclosure(literal, enc[0]) {
			f.report(Diagnostic{
				Code:    CodeUnescapedEnclosure,
				Message: fmt.Sprintf("quoted value %q contains unescaped enclosure %q", literal, enc),
			})
		}
		if f.hasRaw && enc == f.enclosure {
			return f.raw
		}
		repeat := f.repeat
		if repeat < 1 {
			repeat = 1
		}
		interior := literal
		if interior == "" && f.innerPadding > 0 {
			interior = strings.Repeat(" ", f.innerPadding)
		}
		run := strings.Repeat(enc, repeat)
		return run + interior + run
	}

	if trim {
		return f.Value()
	}
	if f.hasRaw {
		return f.raw
	}
	return f.leading + f.Value() + f.trailing
}

// String implements fmt.Stringer using the field's own enclosure and no
// trimming.
func (f *Field) String() string { return f.Render("", false) }

// =============================================================================
// HELPERS
// =============================================================================

// enclosureRun counts consecutive enclosure characters starting at i.
func enclosureRun(s string, i int, enc byte) int {
	if enc == 0 {
		return 0
	}
	n := 0
	for i+n < len(s) && s[i+n] == enc {
		n++
	}
	return n
}

// trailingEnclosureRun counts consecutive enclosure characters at the end.
func trailingEnclosureRun(s string, enc byte) int {
	if enc == 0 {
		return 0
	}
	n := 0
	for n < len(s) && s[len(s)-1-n] == enc {
		n++
	}
	return n
}

// hasUnescapedEnclosure reports whether the literal value contains an
// odd-length run of the enclosure character. Even runs are the conventional
// doubling and survive reconstruction unambiguously.
func hasUnescapedEnclosure(s string, enc byte) bool {
	i := 0
	for i < len(s) {
		if s[i] != enc {
			i++
			continue
		}
		run := enclosureRun(s, i, enc)
		if run%2 == 1 {
			return true
		}
		i += run
	}
	return false
}
