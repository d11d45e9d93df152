// =============================================================================
// CSV Toolkit - DATEV Export Format
// =============================================================================
//
// This module implements the line formats of DATEV-style accounting exports:
// a header line carrying the export metadata (EXTF/DTVF marker, format
// version, consultant/client numbers, fiscal year) followed by fixed-layout
// data lines whose field count is dictated by the format category announced
// in the header.
//
// The format is semicolon-delimited, double-quote enclosed, and German in
// its number and date conventions. It supplies its own FieldFactory so that
// every field parsed through this format carries the German locale, without
// the tokenizer or line engine knowing anything about DATEV.
//
// =============================================================================

package formats

import (
	"errors"
	"fmt"

	"github.com/DSchuppelius/go-csv-toolkit/internal/inference"
	"github.com/DSchuppelius/go-csv-toolkit/internal/record"
)

// Dialect constants of DATEV export files.
const (
	DatevDelimiter = ";"
	DatevEnclosure = "\""
)

// Header markers. EXTF marks files produced by third-party software, DTVF
// files produced by DATEV programs themselves.
const (
	MarkerEXTF = "EXTF"
	MarkerDTVF = "DTVF"
)

// Format categories announced in header field 3.
const (
	CategoryBookingBatch     = 21 // Buchungsstapel
	CategoryRecurringBooking = 65 // Wiederkehrende Buchungen
	CategoryAccountLabels    = 20 // Kontenbeschriftungen
)

// Data-line field counts per format category.
const (
	BookingBatchFieldCount  = 125
	AccountLabelsFieldCount = 4
)

// headerFieldCount is the number of metadata fields in a version 700 header
// line.
const headerFieldCount = 31

// Header field positions (0-based) used by the accessors below.
const (
	posMarker = iota
	posVersion
	posCategory
	posFormatName
	posFormatVersion
	posCreatedAt
	_ // reserved
	_ // reserved
	_ // exported by
	_ // reserved
	posConsultant
	posClient
	posFiscalYearStart
	posAccountLength
	posDateFrom
	posDateTo
	posDescription
)

var (
	// ErrNotDatevHeader is returned when the first field carries neither
	// the EXTF nor the DTVF marker.
	ErrNotDatevHeader = errors.New("formats: line is not a DATEV header")

	// ErrHeaderTooShort is returned when a header line has fewer metadata
	// fields than the format version requires.
	ErrHeaderTooShort = errors.New("formats: DATEV header has too few fields")

	// ErrFieldCount is returned when a data line does not match the field
	// count of the header's format category.
	ErrFieldCount = errors.New("formats: unexpected field count for format category")
)

// DatevFactory builds fields with the German locale, as every DATEV export
// uses German number and date conventions.
type DatevFactory struct {
	Report record.Reporter
}

// CreateField implements record.FieldFactory.
func (f DatevFactory) CreateField(raw, enclosure string) *record.Field {
	return record.NewField(raw, enclosure, inference.German, f.Report)
}

// =============================================================================
// HEADER LINE
// =============================================================================

// Header is a parsed DATEV export header line.
type Header struct {
	line *record.Line
}

// ParseHeader parses and validates a DATEV header line. Tokenizer failures
// propagate; a line that parses but is not a DATEV header is rejected with
// ErrNotDatevHeader or ErrHeaderTooShort.
func ParseHeader(text string, report record.Reporter) (*Header, error) {
	line, err := record.FromString(text, DatevDelimiter, DatevEnclosure, DatevFactory{Report: report})
	if err != nil {
		return nil, fmt.Errorf("parsing DATEV header: %w", err)
	}
	h := &Header{line: line}
	marker := h.Marker()
	if marker != MarkerEXTF && marker != MarkerDTVF {
		return nil, ErrNotDatevHeader
	}
	if line.CountFields() < headerFieldCount {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrHeaderTooShort, line.CountFields(), headerFieldCount)
	}
	return h, nil
}

// IsHeaderLine reports whether text starts a DATEV export, without fully
// validating it. Useful for format sniffing.
func IsHeaderLine(text string) bool {
	line, err := record.FromString(text, DatevDelimiter, DatevEnclosure, DatevFactory{})
	if err != nil {
		return false
	}
	f, ok := line.Field(posMarker)
	if !ok {
		return false
	}
	v := f.Value()
	return v == MarkerEXTF || v == MarkerDTVF
}

// Line returns the underlying parsed line.
func (h *Header) Line() *record.Line { return h.line }

// Marker returns the export marker, EXTF or DTVF.
func (h *Header) Marker() string { return h.fieldValue(posMarker) }

// Version returns the header version, e.g. 700.
func (h *Header) Version() int64 { return h.fieldInt(posVersion) }

// Category returns the format category, e.g. 21 for a booking batch.
func (h *Header) Category() int64 { return h.fieldInt(posCategory) }

// FormatName returns the format name, e.g. "Buchungsstapel".
func (h *Header) FormatName() string { return h.fieldValue(posFormatName) }

// FormatVersion returns the version of the named format.
func (h *Header) FormatVersion() int64 { return h.fieldInt(posFormatVersion) }

// Consultant returns the consultant number.
func (h *Header) Consultant() int64 { return h.fieldInt(posConsultant) }

// Client returns the client number.
func (h *Header) Client() int64 { return h.fieldInt(posClient) }

// AccountLength returns the general-ledger account number length.
func (h *Header) AccountLength() int64 { return h.fieldInt(posAccountLength) }

// Description returns the free-text batch description.
func (h *Header) Description() string { return h.fieldValue(posDescription) }

// DataFieldCount returns the field count data lines must have for the
// header's format category, or false when the category has no fixed layout.
func (h *Header) DataFieldCount() (int, bool) {
	switch h.Category() {
	case CategoryBookingBatch, CategoryRecurringBooking:
		return BookingBatchFieldCount, true
	case CategoryAccountLabels:
		return AccountLabelsFieldCount, true
	default:
		return 0, false
	}
}

func (h *Header) fieldValue(index int) string {
	f, ok := h.line.Field(index)
	if !ok {
		return ""
	}
	return f.Value()
}

func (h *Header) fieldInt(index int) int64 {
	f, ok := h.line.Field(index)
	if !ok {
		return 0
	}
	if v, isInt := f.TypedValue().(inference.Int); isInt {
		return int64(v)
	}
	return 0
}

// =============================================================================
// DATA LINES
// =============================================================================

// ParseDataLine parses one data line of a DATEV export and, when the header
// announces a fixed-layout category, enforces its field count.
func ParseDataLine(text string, header *Header, report record.Reporter) (*record.Line, error) {
	line, err := record.FromString(text, DatevDelimiter, DatevEnclosure, DatevFactory{Report: report})
	if err != nil {
		return nil, fmt.Errorf("parsing DATEV data line: %w", err)
	}
	if header != nil {
		if want, ok := header.DataFieldCount(); ok && line.CountFields() != want {
			return nil, fmt.Errorf("%w: have %d, want %d", ErrFieldCount, line.CountFields(), want)
		}
	}
	return line, nil
}
