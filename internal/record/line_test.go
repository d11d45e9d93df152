package record

import (
	"errors"
	"testing"

	"github.com/DSchuppelius/go-csv-toolkit/internal/inference"
	"github.com/DSchuppelius/go-csv-toolkit/internal/tokenizer"
)

func germanFactory() FieldFactory {
	return DefaultFactory{Locale: inference.German}
}

func TestLineRoundTrip(t *testing.T) {
	t.Parallel()

	lines := []string{
		`a;b;c`,
		`a;"b;c";d`,
		`"";x;""""`,
		`""ABC"";"""ABC""";plain`,
		`1,5;  42  ;"1,5"`,
		`""""quoted""";"""quoted""""`,
		`a;b;`,
		``,
	}

	for _, raw := range lines {
		line, err := FromString(raw, ";", "\"", germanFactory())
		if err != nil {
			t.Fatalf("FromString(%q) returned error: %v", raw, err)
		}
		if got := line.Render("", ""); got != raw {
			t.Errorf("Line(%q).Render = %q, want byte-exact round trip", raw, got)
		}
	}
}

func TestLineFieldAccess(t *testing.T) {
	t.Parallel()

	line, err := FromString(`a;"b";42;""`, ";", "\"", germanFactory())
	if err != nil {
		t.Fatal(err)
	}
	if line.CountFields() != 4 {
		t.Fatalf("CountFields = %d, want 4", line.CountFields())
	}
	if line.CountQuotedFields() != 2 {
		t.Fatalf("CountQuotedFields = %d, want 2", line.CountQuotedFields())
	}
	f, ok := line.Field(2)
	if !ok || !f.IsInt() {
		t.Fatalf("Field(2) = (%v, %v), want the integer field", f, ok)
	}
	if _, ok := line.Field(4); ok {
		t.Fatal("Field(4) should be out of range")
	}
	if _, ok := line.Field(-1); ok {
		t.Fatal("Field(-1) should be out of range")
	}
}

func TestLineEnclosureRepeatRange(t *testing.T) {
	t.Parallel()

	line, err := FromString(`plain;"a";""b"";"""c"""`, ";", "\"", germanFactory())
	if err != nil {
		t.Fatal(err)
	}

	min, max, ok := line.EnclosureRepeatRange(false)
	if !ok || min != 1 || max != 3 {
		t.Fatalf("quoted-only range = (%d, %d, %v), want (1, 3, true)", min, max, ok)
	}

	min, max, ok = line.EnclosureRepeatRange(true)
	if !ok || min != 0 || max != 3 {
		t.Fatalf("full range = (%d, %d, %v), want (0, 3, true)", min, max, ok)
	}

	unquoted, err := FromString(`a;b`, ";", "\"", germanFactory())
	if err != nil {
		t.Fatal(err)
	}
	if _, _, ok := unquoted.EnclosureRepeatRange(false); ok {
		t.Fatal("range over no quoted fields should report not ok")
	}
}

func TestLineEqualsIgnoresRawForm(t *testing.T) {
	t.Parallel()

	a, err := FromString(`A;1;x`, ";", "\"", germanFactory())
	if err != nil {
		t.Fatal(err)
	}
	b, err := FromString(`"A";1;x`, ";", "\"", germanFactory())
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equals(b) {
		t.Fatal("differently quoted but value-identical lines must be equal")
	}

	c, err := FromString(`A;2;x`, ";", "\"", germanFactory())
	if err != nil {
		t.Fatal(err)
	}
	if a.Equals(c) {
		t.Fatal("lines with different values must not be equal")
	}

	d, err := FromString(`A;1;x`, ";", "", germanFactory())
	if err != nil {
		t.Fatal(err)
	}
	if a.Equals(d) {
		t.Fatal("lines with different enclosures must not be equal")
	}
	if a.Equals(nil) {
		t.Fatal("a line never equals nil")
	}
}

func TestLineEmptyDelimiterRejected(t *testing.T) {
	t.Parallel()

	if _, err := FromString("a;b", "", "\"", germanFactory()); !errors.Is(err, tokenizer.ErrEmptyDelimiter) {
		t.Fatalf("FromString with empty delimiter: %v", err)
	}
	if _, err := NewLine(nil, "", "\""); !errors.Is(err, tokenizer.ErrEmptyDelimiter) {
		t.Fatalf("NewLine with empty delimiter: %v", err)
	}
}

func TestLineTokenizerErrorsPropagate(t *testing.T) {
	t.Parallel()

	_, err := FromString(`a;b"c`, ";", "\"", germanFactory())
	if !errors.Is(err, tokenizer.ErrBareEnclosure) {
		t.Fatalf("error = %v, want bare enclosure", err)
	}
	var perr *tokenizer.ParseError
	if !errors.As(err, &perr) || perr.Index != 3 {
		t.Fatalf("positional detail lost: %v", err)
	}

	_, err = FromString(`a;"bc`, ";", "\"", germanFactory())
	if !errors.Is(err, tokenizer.ErrUnterminated) {
		t.Fatalf("error = %v, want unterminated", err)
	}
}

func TestLineRenderWithOverrides(t *testing.T) {
	t.Parallel()

	line, err := FromString(`a;"b"`, ";", "\"", germanFactory())
	if err != nil {
		t.Fatal(err)
	}
	if got := line.Render(",", ""); got != `a,"b"` {
		t.Fatalf("Render with delimiter override = %q", got)
	}
	if got := line.Render(";", "'"); got != `a;'b'` {
		t.Fatalf("Render with enclosure override = %q", got)
	}
}

func TestLineFromPrebuiltFields(t *testing.T) {
	t.Parallel()

	fields := []*Field{
		NewValueField(inference.Text("x"), false, "\"", inference.German, nil),
		NewValueField(inference.Int(9), true, "\"", inference.German, nil),
	}
	line, err := NewLine(fields, ";", "\"")
	if err != nil {
		t.Fatal(err)
	}
	if got := line.Render("", ""); got != `x;"9"` {
		t.Fatalf("Render = %q, want %q", got, `x;"9"`)
	}
	if line.CountFields() != 2 {
		t.Fatalf("CountFields = %d, want 2", line.CountFields())
	}
}
