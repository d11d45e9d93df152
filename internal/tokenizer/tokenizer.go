// =============================================================================
// CSV Toolkit - Quote-Run Tokenizer
// =============================================================================
//
// This module splits one physical line into raw field substrings given a
// delimiter and an enclosure character. It tracks enclosure state and the
// length of enclosure runs:
//
//   - A run of enclosure characters at the start of a field opens quoting.
//   - A run immediately followed by a delimiter, end of input, or a line
//     break closes quoting. Whitespace between the run and the boundary is
//     tolerated.
//   - Enclosure characters inside quotes that are not adjacent to a closing
//     boundary are literal content. How many of them are structural is
//     decided later, per field.
//
// The tokenizer only splits. It does not trim, unquote, or type fields; the
// substrings it returns still carry their enclosure runs and surrounding
// whitespace.
//
// Malformed input is reported strictly, with the offending byte index and a
// short context window, and is never recovered locally.
//
// =============================================================================

package tokenizer

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmptyDelimiter is returned before tokenization starts when the
	// delimiter is empty.
	ErrEmptyDelimiter = errors.New("tokenizer: delimiter must not be empty")

	// ErrBareEnclosure is returned when an enclosure character appears in
	// the middle of an unquoted field.
	ErrBareEnclosure = errors.New("tokenizer: enclosure character in unquoted field")

	// ErrContentAfterClose is returned when non-whitespace content follows
	// a closed enclosure run before the next delimiter.
	ErrContentAfterClose = errors.New("tokenizer: content after closing enclosure")

	// ErrUnterminated is returned when the input ends while still inside an
	// enclosed field.
	ErrUnterminated = errors.New("tokenizer: unterminated enclosed field")
)

// contextRadius is the number of bytes shown around the offending index in a
// ParseError.
const contextRadius = 10

// ParseError wraps a tokenizer failure with the offending byte index and a
// context window cut from the input line.
type ParseError struct {
	Index   int
	Context string
	Err     error
}

// Error formats the failure with its position and context window.
func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Context == "" {
		return fmt.Sprintf("%v at index %d", e.Err, e.Index)
	}
	return fmt.Sprintf("%v at index %d near %q", e.Err, e.Index, e.Context)
}

// Unwrap returns the sentinel error so ParseError participates in errors.Is.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func errorAt(line string, index int, err error) error {
	lo := index - contextRadius
	if lo < 0 {
		lo = 0
	}
	hi := index + contextRadius
	if hi > len(line) {
		hi = len(line)
	}
	return &ParseError{Index: index, Context: line[lo:hi], Err: err}
}

// =============================================================================
// TOKENIZER
// =============================================================================

// Tokenize splits line into raw field substrings. The delimiter may be any
// non-empty string; the enclosure must be a single character or empty to
// disable quoting entirely. The last field is always appended, and a line
// ending in a delimiter yields one additional empty field.
func Tokenize(line, delimiter, enclosure string) ([]string, error) {
	if delimiter == "" {
		return nil, ErrEmptyDelimiter
	}
	var enc byte
	if enclosure != "" {
		enc = enclosure[0]
	}

	fields := make([]string, 0, 8)
	var (
		start     int  // byte offset of the current field
		inQuotes  bool // inside an enclosed region
		bareField bool // non-whitespace unquoted content seen in this field
		closed    int  // offset just past the closing run, -1 when open
	)
	closed = -1

	i := 0
	for i < len(line) {
		c := line[i]

		if !inQuotes && strings.HasPrefix(line[i:], delimiter) {
			fields = append(fields, line[start:i])
			i += len(delimiter)
			start = i
			bareField = false
			closed = -1
			continue
		}

		if enc != 0 && c == enc {
			run := runLength(line, i, enc)
			switch {
			case inQuotes:
				if atBoundary(line, i+run, delimiter) {
					inQuotes = false
					closed = i + run
				}
				// Not adjacent to a boundary: the run is literal content.
			case bareField:
				return nil, errorAt(line, i, ErrBareEnclosure)
			case closed >= 0:
				return nil, errorAt(line, i, ErrContentAfterClose)
			default:
				// Field start. A run already sitting on a boundary is a
				// complete enclosed token, e.g. `""` or `""""`.
				if atBoundary(line, i+run, delimiter) {
					closed = i + run
				} else {
					inQuotes = true
				}
			}
			i += run
			continue
		}

		if !inQuotes {
			if c == '\n' || c == '\r' {
				break
			}
			if c != ' ' && c != '\t' {
				if closed >= 0 {
					return nil, errorAt(line, i, ErrContentAfterClose)
				}
				bareField = true
			}
		}
		i++
	}

	if inQuotes {
		return nil, errorAt(line, len(line), ErrUnterminated)
	}

	fields = append(fields, line[start:i])
	return fields, nil
}

// runLength counts the consecutive occurrences of enc starting at i.
func runLength(line string, i int, enc byte) int {
	n := 0
	for i+n < len(line) && line[i+n] == enc {
		n++
	}
	return n
}

// atBoundary reports whether pos sits on a field boundary: end of input, a
// line break, or the delimiter, with optional intervening spaces and tabs.
func atBoundary(line string, pos int, delimiter string) bool {
	for pos < len(line) && (line[pos] == ' ' || line[pos] == '\t') {
		pos++
	}
	if pos >= len(line) {
		return true
	}
	if line[pos] == '\n' || line[pos] == '\r' {
		return true
	}
	return strings.HasPrefix(line[pos:], delimiter)
}
