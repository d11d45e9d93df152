package tokenizer

import (
	"errors"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		line      string
		delimiter string
		enclosure string
		want      []string
	}{
		{
			name:      "plainFields",
			line:      "one;two;three",
			delimiter: ";",
			enclosure: "\"",
			want:      []string{"one", "two", "three"},
		},
		{
			name:      "trailingDelimiterAppendsEmptyField",
			line:      "a;b;",
			delimiter: ";",
			enclosure: "\"",
			want:      []string{"a", "b", ""},
		},
		{
			name:      "emptyLineIsOneEmptyField",
			line:      "",
			delimiter: ";",
			enclosure: "\"",
			want:      []string{""},
		},
		{
			name:      "quotedDelimiterIsLiteral",
			line:      "a;\"b;c\";d",
			delimiter: ";",
			enclosure: "\"",
			want:      []string{"a", "\"b;c\"", "d"},
		},
		{
			name:      "doubledEnclosureSurvivesAsContent",
			line:      "\"a\"\"b\";c",
			delimiter: ";",
			enclosure: "\"",
			want:      []string{"\"a\"\"b\"", "c"},
		},
		{
			name:      "repeatedEnclosureRuns",
			line:      "\"\"ABC\"\";\"\"\"\"",
			delimiter: ";",
			enclosure: "\"",
			want:      []string{"\"\"ABC\"\"", "\"\"\"\""},
		},
		{
			name:      "asymmetricRunsPassThrough",
			line:      "\"\"\"\"quoted\"\"\";x",
			delimiter: ";",
			enclosure: "\"",
			want:      []string{"\"\"\"\"quoted\"\"\"", "x"},
		},
		{
			name:      "whitespaceAroundQuotesTolerated",
			line:      "a;  \"b\"  ;c",
			delimiter: ";",
			enclosure: "\"",
			want:      []string{"a", "  \"b\"  ", "c"},
		},
		{
			name:      "unquotedWhitespacePreserved",
			line:      "  a  ;b",
			delimiter: ";",
			enclosure: "\"",
			want:      []string{"  a  ", "b"},
		},
		{
			name:      "multiCharacterDelimiter",
			line:      "a||b||\"c||d\"",
			delimiter: "||",
			enclosure: "\"",
			want:      []string{"a", "b", "\"c||d\""},
		},
		{
			name:      "enclosureDisabled",
			line:      "a;\"b;c",
			delimiter: ";",
			enclosure: "",
			want:      []string{"a", "\"b", "c"},
		},
		{
			name:      "quotedEmptyWithInnerPadding",
			line:      "\"\" \"\";x",
			delimiter: ";",
			enclosure: "\"",
			want:      []string{"\"\" \"\"", "x"},
		},
		{
			name:      "crlfTerminatorIgnored",
			line:      "a;b\r\n",
			delimiter: ";",
			enclosure: "\"",
			want:      []string{"a", "b"},
		},
		{
			name:      "commaDelimiter",
			line:      "1,5;2,\"x,y\"",
			delimiter: ",",
			enclosure: "\"",
			want:      []string{"1", "5;2", "\"x,y\""},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Tokenize(tc.line, tc.delimiter, tc.enclosure)
			if err != nil {
				t.Fatalf("Tokenize(%q) returned error: %v", tc.line, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Tokenize(%q) = %q, want %q", tc.line, got, tc.want)
			}
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		line      string
		delimiter string
		enclosure string
		wantErr   error
		wantIndex int
	}{
		{
			name:      "bareEnclosureMidField",
			line:      "ab\"cd;e",
			delimiter: ";",
			enclosure: "\"",
			wantErr:   ErrBareEnclosure,
			wantIndex: 2,
		},
		{
			name:      "bareEnclosureAfterContentAndSpace",
			line:      "a;b \"c\";d",
			delimiter: ";",
			enclosure: "\"",
			wantErr:   ErrBareEnclosure,
			wantIndex: 4,
		},
		{
			name:      "unterminatedQuote",
			line:      "a;\"bc",
			delimiter: ";",
			enclosure: "\"",
			wantErr:   ErrUnterminated,
			wantIndex: 5,
		},
		{
			name:      "contentAfterCloseEndsUnterminated",
			line:      "\"a\"x",
			delimiter: ";",
			enclosure: "\"",
			wantErr:   ErrUnterminated,
			wantIndex: 4,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Tokenize(tc.line, tc.delimiter, tc.enclosure)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Tokenize(%q) error = %v, want %v", tc.line, err, tc.wantErr)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Tokenize(%q) error is not a *ParseError: %v", tc.line, err)
			}
			if perr.Index != tc.wantIndex {
				t.Fatalf("Tokenize(%q) error index = %d, want %d", tc.line, perr.Index, tc.wantIndex)
			}
			if perr.Context == "" {
				t.Fatalf("Tokenize(%q) error carries no context window", tc.line)
			}
		})
	}
}

func TestTokenizeEmptyDelimiter(t *testing.T) {
	t.Parallel()

	_, err := Tokenize("a;b", "", "\"")
	if !errors.Is(err, ErrEmptyDelimiter) {
		t.Fatalf("Tokenize with empty delimiter: error = %v, want %v", err, ErrEmptyDelimiter)
	}
}
