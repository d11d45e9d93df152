package record

import (
	"testing"

	"github.com/DSchuppelius/go-csv-toolkit/internal/inference"
)

func newTestField(raw string) *Field {
	return NewField(raw, "\"", inference.German, nil)
}

func TestFieldRoundTrip(t *testing.T) {
	t.Parallel()

	// Every accepted raw form must reconstruct byte for byte while no
	// mutation has happened.
	raws := []string{
		`""`,
		`""""`,
		`""""""`,
		`""ABC""`,
		`"""ABC"""`,
		`""""A""""`,
		`""A "B" C""`,
		`""A ""B"" C""`,
		`""""quoted"""`,
		`"""quoted""""`,
		`"A"`,
		`" "`,
		`"" ""`,
		`plain`,
		`  padded  `,
		`1.234,50`,
		`'042`,
		``,
	}

	for _, raw := range raws {
		f := newTestField(raw)
		if got := f.Render("", false); got != raw {
			t.Errorf("Field(%q).Render = %q, want byte-exact round trip", raw, got)
		}
	}
}

func TestFieldQuoteRunAnalysis(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw        string
		wantQuoted bool
		wantRepeat int
		wantValue  string
	}{
		{raw: `""`, wantQuoted: true, wantRepeat: 1, wantValue: ""},
		{raw: `""""`, wantQuoted: true, wantRepeat: 2, wantValue: ""},
		{raw: `""""""`, wantQuoted: true, wantRepeat: 3, wantValue: ""},
		{raw: `""ABC""`, wantQuoted: true, wantRepeat: 2, wantValue: "ABC"},
		{raw: `"""ABC"""`, wantQuoted: true, wantRepeat: 3, wantValue: "ABC"},
		{raw: `""""A""""`, wantQuoted: true, wantRepeat: 4, wantValue: "A"},
		{raw: `""A "B" C""`, wantQuoted: true, wantRepeat: 2, wantValue: `A "B" C`},
		{raw: `""A ""B"" C""`, wantQuoted: true, wantRepeat: 2, wantValue: `A ""B"" C`},
		{raw: `""""quoted"""`, wantQuoted: true, wantRepeat: 3, wantValue: `"quoted`},
		{raw: `"""quoted""""`, wantQuoted: true, wantRepeat: 3, wantValue: `quoted"`},
		{raw: `plain`, wantQuoted: false, wantRepeat: 0, wantValue: "plain"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.raw, func(t *testing.T) {
			t.Parallel()
			f := newTestField(tc.raw)
			if f.IsQuoted() != tc.wantQuoted {
				t.Fatalf("Field(%q).IsQuoted = %v, want %v", tc.raw, f.IsQuoted(), tc.wantQuoted)
			}
			if f.EnclosureRepeat() != tc.wantRepeat {
				t.Fatalf("Field(%q).EnclosureRepeat = %d, want %d", tc.raw, f.EnclosureRepeat(), tc.wantRepeat)
			}
			if f.Value() != tc.wantValue {
				t.Fatalf("Field(%q).Value = %q, want %q", tc.raw, f.Value(), tc.wantValue)
			}
		})
	}
}

func TestFieldWhitespaceRoundTrip(t *testing.T) {
	t.Parallel()

	// A whitespace-only unquoted field is recorded entirely as leading
	// whitespace; the trailing component stays empty so nothing is counted
	// twice.
	f := newTestField("   ")
	if f.LeadingWhitespace() != "   " || f.TrailingWhitespace() != "" {
		t.Fatalf("whitespace split = (%q, %q), want all leading",
			f.LeadingWhitespace(), f.TrailingWhitespace())
	}
	if got := f.Render("", false); got != "   " {
		t.Fatalf("Render = %q, want %q", got, "   ")
	}
	if !f.IsNull() || !f.IsBlank() {
		t.Fatalf("whitespace-only field: IsNull = %v, IsBlank = %v", f.IsNull(), f.IsBlank())
	}

	padded := newTestField("  42  ")
	if padded.LeadingWhitespace() != "  " || padded.TrailingWhitespace() != "  " {
		t.Fatalf("padded whitespace split = (%q, %q)",
			padded.LeadingWhitespace(), padded.TrailingWhitespace())
	}
	if !padded.IsInt() {
		t.Fatal("padded integer field should infer as int")
	}
	if got := padded.Render("", true); got != "42" {
		t.Fatalf("trimmed Render = %q, want %q", got, "42")
	}
	if got := padded.Render("", false); got != "  42  " {
		t.Fatalf("untrimmed Render = %q, want %q", got, "  42  ")
	}
}

func TestFieldInnerPadding(t *testing.T) {
	t.Parallel()

	f := newTestField(`"   "`)
	if !f.IsQuoted() || !f.IsEmpty() {
		t.Fatalf("Field(%q): IsQuoted = %v, IsEmpty = %v", `"   "`, f.IsQuoted(), f.IsEmpty())
	}
	if f.IsNull() {
		t.Fatal("empty quoted field must not be null")
	}
	if f.InnerPadding() != 3 {
		t.Fatalf("InnerPadding = %d, want 3", f.InnerPadding())
	}

	// Reconstruction from metadata restores the padding even after the raw
	// text was invalidated.
	f.SetEnclosureRepeat(2)
	if got := f.Render("", false); got != `""   ""` {
		t.Fatalf("Render after repeat change = %q, want %q", got, `""   ""`)
	}
}

func TestFieldTypeInferenceBoundary(t *testing.T) {
	t.Parallel()

	if f := newTestField("42"); !f.IsInt() {
		t.Fatal("unquoted 42 should be int")
	}
	if f := newTestField("3,14"); !f.IsFloat() {
		t.Fatal("unquoted 3,14 should be float in a German locale")
	}
	if f := NewField("3.14", "\"", inference.USEnglish, nil); !f.IsFloat() {
		t.Fatal("unquoted 3.14 should be float in a US locale")
	}
	if f := newTestField("ja"); !f.IsBool() {
		t.Fatal("unquoted ja should be bool in a German locale")
	}
	if f := newTestField("31.12.2023"); !f.IsDateTime() {
		t.Fatal("unquoted 31.12.2023 should be a date in a German locale")
	}
	if f := newTestField("31.12.2023"); !f.IsDateTime("02.01.2006") {
		t.Fatal("IsDateTime with matching layout should hold")
	}
	if f := newTestField(`"42"`); !f.IsString() || f.IsInt() {
		t.Fatal("quoted 42 must stay text")
	}
}

func TestFieldSetValueMutatesInPlace(t *testing.T) {
	t.Parallel()

	f := newTestField("  1,5  ")
	g := f
	f.SetValue("2,5")
	if g.Value() != "2,5" {
		t.Fatalf("SetValue not visible through shared reference: %q", g.Value())
	}
	if !f.IsFloat() {
		t.Fatal("SetValue should re-run inference on unquoted fields")
	}
	// Raw is gone; reconstruction now comes from the typed value.
	if got := f.Render("", false); got != "2,5" {
		t.Fatalf("Render after SetValue = %q, want %q", got, "2,5")
	}

	quoted := newTestField(`"x"`)
	quoted.SetValue("42")
	if !quoted.IsString() {
		t.Fatal("SetValue on a quoted field must take the text literally")
	}
	if got := quoted.Render("", false); got != `"42"` {
		t.Fatalf("Render after quoted SetValue = %q, want %q", got, `"42"`)
	}
}

func TestFieldSetTypedValueBypassesInference(t *testing.T) {
	t.Parallel()

	f := newTestField("  42  ")
	f.SetTypedValue(inference.Text("000042"))
	if !f.IsString() {
		t.Fatal("SetTypedValue must not re-run inference")
	}
	if f.Value() != "000042" {
		t.Fatalf("Value = %q, want %q", f.Value(), "000042")
	}
	// Raw is invalidated; whitespace metadata survives.
	if got := f.Render("", false); got != "  000042  " {
		t.Fatalf("Render = %q, want whitespace-preserving reconstruction", got)
	}

	quoted := newTestField(`""x""`)
	quoted.SetTypedValue(inference.Int(9))
	if !quoted.IsQuoted() || quoted.EnclosureRepeat() != 2 {
		t.Fatal("SetTypedValue must preserve quoting metadata")
	}
	if got := quoted.Render("", false); got != `""9""` {
		t.Fatalf("Render = %q, want %q", got, `""9""`)
	}
}

func TestFieldWithValueDoesNotMutateReceiver(t *testing.T) {
	t.Parallel()

	f := newTestField(`""ABC""`)
	g := f.WithValue("XYZ")
	if f.Value() != "ABC" {
		t.Fatalf("receiver mutated by WithValue: %q", f.Value())
	}
	if g.Value() != "XYZ" {
		t.Fatalf("copy value = %q, want %q", g.Value(), "XYZ")
	}
	if g.EnclosureRepeat() != f.EnclosureRepeat() || g.IsQuoted() != f.IsQuoted() {
		t.Fatal("WithValue must preserve quoting and enclosure repeat")
	}
	if got := g.Render("", false); got != `""XYZ""` {
		t.Fatalf("copy Render = %q, want %q", got, `""XYZ""`)
	}
}

func TestFieldWithTypedValueChain(t *testing.T) {
	t.Parallel()

	base := newTestField("1")
	a := base.WithTypedValue(inference.Int(2))
	b := a.WithTypedValue(inference.Int(3))
	c := b.WithTypedValue(inference.Float{Value: 4.5})

	if base.Value() != "1" || a.Value() != "2" || b.Value() != "3" || c.Value() != "4,5" {
		t.Fatalf("chain values = %q %q %q %q", base.Value(), a.Value(), b.Value(), c.Value())
	}
	if !c.IsFloat() || !b.IsInt() {
		t.Fatal("chain kinds corrupted")
	}
}

func TestFieldWithQuotedTransitions(t *testing.T) {
	t.Parallel()

	f := newTestField(`"42"`)
	unquoted := f.WithQuoted(false)
	if !unquoted.IsInt() {
		t.Fatal("unquoting literal 42 should re-run inference")
	}
	if f.IsInt() {
		t.Fatal("WithQuoted must not mutate the receiver")
	}

	back := unquoted.WithQuoted(true)
	if !back.IsString() || !back.IsQuoted() {
		t.Fatal("re-quoting should freeze the formatted value as text")
	}
	if got := back.Render("", false); got != `"42"` {
		t.Fatalf("Render after re-quoting = %q, want %q", got, `"42"`)
	}
}

func TestFieldEnclosureRepeatClamp(t *testing.T) {
	t.Parallel()

	f := newTestField(`"x"`)
	f.SetEnclosureRepeat(-3)
	if f.EnclosureRepeat() != 0 {
		t.Fatalf("EnclosureRepeat = %d, want clamp to 0", f.EnclosureRepeat())
	}
	// Repeat 0 on a still-quoted field renders with a single enclosure.
	if got := f.Render("", false); got != `"x"` {
		t.Fatalf("Render with repeat 0 = %q, want %q", got, `"x"`)
	}
}

func TestFieldForcedTextMarker(t *testing.T) {
	t.Parallel()

	var c Collector
	f := NewField("'42", "\"", inference.German, c.Report)
	if !f.IsInt() {
		t.Fatal("'42 should infer as int after marker stripping")
	}
	if len(c.Diagnostics) != 1 || c.Diagnostics[0].Code != CodeForcedTextMarker {
		t.Fatalf("diagnostics = %+v, want one forced-text-marker", c.Diagnostics)
	}
	if got := f.Render("", false); got != "'42" {
		t.Fatalf("Render = %q, want retained raw text", got)
	}

	c = Collector{}
	g := NewField("'042", "\"", inference.German, c.Report)
	if !g.IsString() || len(c.Diagnostics) != 0 {
		t.Fatalf("'042 should stay literal text, diagnostics = %+v", c.Diagnostics)
	}
}

func TestFieldUnescapedEnclosureWarning(t *testing.T) {
	t.Parallel()

	var c Collector
	f := NewField(`""A "B" C""`, "\"", inference.German, c.Report)
	out := f.Render("", false)
	if out != `""A "B" C""` {
		t.Fatalf("Render = %q, want byte-exact round trip", out)
	}
	if len(c.Diagnostics) == 0 || c.Diagnostics[0].Code != CodeUnescapedEnclosure {
		t.Fatalf("diagnostics = %+v, want unescaped-enclosure warning", c.Diagnostics)
	}

	// Doubled enclosures are conventional escaping and raise no warning.
	c = Collector{}
	g := NewField(`""A ""B"" C""`, "\"", inference.German, c.Report)
	g.Render("", false)
	if len(c.Diagnostics) != 0 {
		t.Fatalf("doubled enclosure raised diagnostics: %+v", c.Diagnostics)
	}
}

func TestFieldValueFormatsTemplate(t *testing.T) {
	t.Parallel()

	f := newTestField("1.234,50")
	if !f.IsFloat() {
		t.Fatal("grouped German float should infer as float")
	}
	// Grouping separators never survive into the formatted value; the
	// decimal-place count does.
	if got := f.Value(); got != "1234,50" {
		t.Fatalf("Value = %q, want %q", got, "1234,50")
	}
	if got := f.Render("", false); got != "1.234,50" {
		t.Fatalf("unmutated Render = %q, want original raw text", got)
	}
}

func TestNewValueField(t *testing.T) {
	t.Parallel()

	f := NewValueField(inference.Int(7), true, "\"", inference.German, nil)
	if got := f.Render("", false); got != `"7"` {
		t.Fatalf("Render = %q, want %q", got, `"7"`)
	}
	g := NewValueField(inference.Text("x"), false, "\"", inference.German, nil)
	if got := g.Render("", false); got != "x" {
		t.Fatalf("Render = %q, want %q", got, "x")
	}
}
