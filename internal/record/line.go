// =============================================================================
// CSV Toolkit - Line Entity
// =============================================================================
//
// A Line owns an ordered collection of Fields plus the delimiter/enclosure
// pair used to split and rejoin them. Lines are built either directly from
// pre-built Fields or via FromString, which tokenizes first and constructs
// one Field per substring through an injected FieldFactory.
//
// The FieldFactory is how concrete line formats (DATEV exports, bank
// statement headers) inject their locale and field behavior without the
// tokenizer knowing about them.
//
// =============================================================================

package record

import (
	"fmt"
	"strings"

	"github.com/DSchuppelius/go-csv-toolkit/internal/inference"
	"github.com/DSchuppelius/go-csv-toolkit/internal/tokenizer"
)

// FieldFactory builds a Field from one raw tokenizer substring. Every
// concrete line format supplies one.
type FieldFactory interface {
	CreateField(raw, enclosure string) *Field
}

// DefaultFactory builds plain fields with a fixed locale and reporter.
type DefaultFactory struct {
	Locale inference.Locale
	Report Reporter
}

// CreateField implements FieldFactory.
func (d DefaultFactory) CreateField(raw, enclosure string) *Field {
	return NewField(raw, enclosure, d.Locale, d.Report)
}

// Line is an ordered sequence of fields with its dialect parameters. Field
// order is significant and preserved.
type Line struct {
	fields    []*Field
	delimiter string
	enclosure string
}

// NewLine builds a line from pre-built fields. The delimiter must not be
// empty; the enclosure may be empty to disable quoting.
func NewLine(fields []*Field, delimiter, enclosure string) (*Line, error) {
	if delimiter == "" {
		return nil, tokenizer.ErrEmptyDelimiter
	}
	return &Line{fields: fields, delimiter: delimiter, enclosure: enclosure}, nil
}

// FromString tokenizes one physical line and constructs a field per
// substring through the factory. Tokenizer failures propagate unchanged,
// with their positional detail intact.
func FromString(text, delimiter, enclosure string, factory FieldFactory) (*Line, error) {
	if delimiter == "" {
		return nil, tokenizer.ErrEmptyDelimiter
	}
	if factory == nil {
		return nil, fmt.Errorf("record: field factory must not be nil")
	}
	raws, err := tokenizer.Tokenize(text, delimiter, enclosure)
	if err != nil {
		return nil, err
	}
	fields := make([]*Field, len(raws))
	for i, raw := range raws {
		fields[i] = factory.CreateField(raw, enclosure)
	}
	return &Line{fields: fields, delimiter: delimiter, enclosure: enclosure}, nil
}

// =============================================================================
// ACCESS
// =============================================================================

// Field returns the field at index, or false when the index is out of range.
func (l *Line) Field(index int) (*Field, bool) {
	if index < 0 || index >= len(l.fields) {
		return nil, false
	}
	return l.fields[index], true
}

// Fields returns the underlying field slice in order. Callers must not
// reorder it.
func (l *Line) Fields() []*Field { return l.fields }

// CountFields returns the number of fields.
func (l *Line) CountFields() int { return len(l.fields) }

// CountQuotedFields returns the number of enclosure-wrapped fields.
func (l *Line) CountQuotedFields() int {
	n := 0
	for _, f := range l.fields {
		if f.IsQuoted() {
			n++
		}
	}
	return n
}

// Delimiter returns the line's delimiter.
func (l *Line) Delimiter() string { return l.delimiter }

// Enclosure returns the line's enclosure character, possibly empty.
func (l *Line) Enclosure() string { return l.enclosure }

// EnclosureRepeatRange returns the minimum and maximum per-field enclosure
// repeat. With includeUnquoted false, fields with repeat 0 are skipped. The
// third return value is false when no field qualified.
func (l *Line) EnclosureRepeatRange(includeUnquoted bool) (min, max int, ok bool) {
	for _, f := range l.fields {
		r := f.EnclosureRepeat()
		if r == 0 && !includeUnquoted {
			continue
		}
		if !ok {
			min, max, ok = r, r, true
			continue
		}
		if r < min {
			min = r
		}
		if r > max {
			max = r
		}
	}
	return min, max, ok
}

// =============================================================================
// RECONSTRUCTION AND EQUALITY
// =============================================================================

// Render joins each field's reconstructed text with the delimiter. Empty
// arguments fall back to the line's own delimiter and enclosure. This is the
// line-level round-trip operation.
func (l *Line) Render(delimiter, enclosure string) string {
	if delimiter == "" {
		delimiter = l.delimiter
	}
	if enclosure == "" {
		enclosure = l.enclosure
	}
	parts := make([]string, len(l.fields))
	for i, f := range l.fields {
		parts[i] = f.Render(enclosure, false)
	}
	return strings.Join(parts, delimiter)
}

// String implements fmt.Stringer using the line's own dialect.
func (l *Line) String() string { return l.Render("", "") }

// Equals reports structural equality: identical delimiter, enclosure, field
// count, and pairwise-equal formatted values. Raw text and quoting style do
// not participate, so two lines with different quoting but identical logical
// content are equal.
func (l *Line) Equals(other *Line) bool {
	if other == nil {
		return false
	}
	if l.delimiter != other.delimiter || l.enclosure != other.enclosure {
		return false
	}
	if len(l.fields) != len(other.fields) {
		return false
	}
	for i, f := range l.fields {
		if f.Value() != other.fields[i].Value() {
			return false
		}
	}
	return true
}
