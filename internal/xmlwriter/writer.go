// =============================================================================
// CSV Toolkit - XML Writer Module
// =============================================================================
//
// This module generates XML documents from parsed lines. Every field is
// emitted with the metadata the parser recovered: its inferred type, its
// quoting state and, where it differs from the interpreted value, its
// original raw form.
//
// XML STRUCTURE:
//   The generated XML follows this nesting pattern:
//
//   <document profile="bank" source="bank_2024.csv">
//     <line n="1">
//       <field n="1" type="datetime">31.12.2023</field>
//       <field n="2" type="float" raw="1.234,50">1234,50</field>
//       <field n="3" type="text" quoted="true">Miete Januar</field>
//     </line>
//   </document>
//
// CUSTOMIZATION:
//   - Modify element and attribute names via GenerateOptions
//   - Add document-level attributes as needed
//
// =============================================================================

package xmlwriter

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/DSchuppelius/go-csv-toolkit/internal/record"
)

// =============================================================================
// XML GENERATION OPTIONS
// =============================================================================

// GenerateOptions contains options for XML generation.
type GenerateOptions struct {
	// Indent is the string used for indentation.
	// Default: "  " (two spaces)
	Indent string

	// IncludeXMLDeclaration determines whether to include the XML declaration.
	// Default: true
	IncludeXMLDeclaration bool

	// Encoding is the encoding for the XML declaration.
	// Default: "UTF-8"
	Encoding string

	// RootElement, LineElement and FieldElement name the emitted elements.
	// Defaults: "document", "line", "field"
	RootElement  string
	LineElement  string
	FieldElement string

	// RootAttributes are additional attributes for the root element,
	// e.g. the profile name and the source file.
	RootAttributes map[string]string

	// TrimValues suppresses the raw-form attribute so that only the
	// interpreted values appear in the output.
	TrimValues bool
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Indent:                "  ",
		IncludeXMLDeclaration: true,
		Encoding:              "UTF-8",
		RootElement:           "document",
		LineElement:           "line",
		FieldElement:          "field",
		RootAttributes:        make(map[string]string),
	}
}

// =============================================================================
// XML GENERATION FUNCTIONS
// =============================================================================

// Generate creates an XML document from the parsed lines with default options.
func Generate(lines []*record.Line) ([]byte, error) {
	return GenerateWithOptions(lines, DefaultGenerateOptions())
}

// GenerateWithOptions creates an XML document with custom options.
//
// GENERATION PROCESS:
//   1. Write the XML declaration if requested
//   2. Create the root element with its attributes
//   3. For each line:
//      a. Create the line element with its 1-based index
//      b. Emit each field with type, quoting and raw-form metadata
func GenerateWithOptions(lines []*record.Line, options GenerateOptions) ([]byte, error) {
	if options.RootElement == "" || options.LineElement == "" || options.FieldElement == "" {
		return nil, fmt.Errorf("xmlwriter: element names must not be empty")
	}

	var buffer bytes.Buffer

	// Write XML declaration if requested.
	if options.IncludeXMLDeclaration {
		encoding := options.Encoding
		if encoding == "" {
			encoding = "UTF-8"
		}
		buffer.WriteString(fmt.Sprintf("<?xml version=\"1.0\" encoding=\"%s\"?>\n", encoding))
	}

	// Write the root element opening tag.
	buffer.WriteString("<")
	buffer.WriteString(options.RootElement)
	for _, key := range sortedKeys(options.RootAttributes) {
		buffer.WriteString(fmt.Sprintf(" %s=\"%s\"", key, escapeXML(options.RootAttributes[key])))
	}
	buffer.WriteString(">\n")

	// Write lines.
	for i, line := range lines {
		writeLine(&buffer, line, i+1, options)
	}

	// Write the root element closing tag.
	buffer.WriteString("</")
	buffer.WriteString(options.RootElement)
	buffer.WriteString(">\n")

	return buffer.Bytes(), nil
}

// writeLine writes one line element and its fields.
func writeLine(buffer *bytes.Buffer, line *record.Line, index int, options GenerateOptions) {
	buffer.WriteString(options.Indent)
	buffer.WriteString(fmt.Sprintf("<%s n=\"%d\">\n", options.LineElement, index))

	for i, field := range line.Fields() {
		writeField(buffer, field, i+1, options)
	}

	buffer.WriteString(options.Indent)
	buffer.WriteString(fmt.Sprintf("</%s>\n", options.LineElement))
}

// writeField writes one field element with its metadata attributes.
func writeField(buffer *bytes.Buffer, field *record.Field, index int, options GenerateOptions) {
	value := field.Value()
	raw := field.Render("", false)

	buffer.WriteString(options.Indent)
	buffer.WriteString(options.Indent)
	buffer.WriteString(fmt.Sprintf("<%s n=\"%d\" type=\"%s\"", options.FieldElement, index, field.TypedValue().Kind()))

	if field.IsQuoted() {
		buffer.WriteString(" quoted=\"true\"")
		if repeat := field.EnclosureRepeat(); repeat > 1 {
			buffer.WriteString(fmt.Sprintf(" repeat=\"%d\"", repeat))
		}
	}
	// Preserve the original form when interpretation changed it.
	if !options.TrimValues && raw != value {
		buffer.WriteString(fmt.Sprintf(" raw=\"%s\"", escapeXML(raw)))
	}

	if value == "" {
		buffer.WriteString("/>\n")
		return
	}

	buffer.WriteString(">")
	buffer.WriteString(escapeXML(value))
	buffer.WriteString(fmt.Sprintf("</%s>\n", options.FieldElement))
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// escapeXML escapes special characters for XML.
func escapeXML(s string) string {
	var buffer bytes.Buffer

	for _, r := range s {
		switch r {
		case '&':
			buffer.WriteString("&amp;")
		case '<':
			buffer.WriteString("&lt;")
		case '>':
			buffer.WriteString("&gt;")
		case '"':
			buffer.WriteString("&quot;")
		case '\'':
			buffer.WriteString("&apos;")
		default:
			buffer.WriteRune(r)
		}
	}

	return buffer.String()
}

// sortedKeys returns map keys in stable order.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
