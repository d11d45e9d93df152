// =============================================================================
// CSV Toolkit - Diagnostics
// =============================================================================
//
// Non-fatal conditions detected during field construction or reconstruction
// (a literal value containing the enclosure character, a spreadsheet
// forced-text marker) are reported through an explicit Reporter instead of a
// global logger. Reporting never interrupts parsing or output generation.
//
// =============================================================================

package record

// Diagnostic codes.
const (
	// CodeUnescapedEnclosure flags a quoted value that contains the
	// enclosure character and is emitted without escaping.
	CodeUnescapedEnclosure = "unescaped-enclosure"

	// CodeForcedTextMarker flags a field whose spreadsheet text marker was
	// stripped before numeric inference.
	CodeForcedTextMarker = "forced-text-marker"
)

// Diagnostic is a single non-fatal condition observed by the engine.
type Diagnostic struct {
	// Code is one of the Code* constants.
	Code string

	// Message is a human-readable description.
	Message string
}

// Reporter receives diagnostics as they occur. Implementations must not
// assume any call ordering beyond the order of the operations that caused
// them.
type Reporter func(Diagnostic)

// Discard is a Reporter that drops every diagnostic. It is the default when
// no reporter is supplied.
func Discard(Diagnostic) {}

// Collector is a Reporter backed by a slice, for callers that want to
// inspect diagnostics after an operation.
type Collector struct {
	Diagnostics []Diagnostic
}

// Report appends d to the collected diagnostics.
func (c *Collector) Report(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}
