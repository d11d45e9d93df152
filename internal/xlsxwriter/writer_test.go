package xlsxwriter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DSchuppelius/go-csv-toolkit/internal/inference"
	"github.com/DSchuppelius/go-csv-toolkit/internal/record"
)

func parseLines(t *testing.T, raws ...string) []*record.Line {
	t.Helper()
	factory := record.DefaultFactory{Locale: inference.German}
	lines := make([]*record.Line, 0, len(raws))
	for _, raw := range raws {
		line, err := record.FromString(raw, ";", "\"", factory)
		if err != nil {
			t.Fatal(err)
		}
		lines = append(lines, line)
	}
	return lines
}

func TestBuildTypedCells(t *testing.T) {
	t.Parallel()

	lines := parseLines(t, `42;1.234,50;ja;31.12.2023;"text";'42`)
	f, err := Build(lines, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	tests := []struct {
		cell string
		want string
	}{
		{cell: "A1", want: "42"},
		{cell: "B1", want: "1234.5"},
		{cell: "C1", want: "TRUE"},
		{cell: "E1", want: "text"},
		// Forced-text marker strips the apostrophe but stays a string cell.
		{cell: "F1", want: "42"},
	}
	for _, tc := range tests {
		got, err := f.GetCellValue("Data", tc.cell)
		if err != nil {
			t.Fatal(err)
		}
		if got != tc.want {
			t.Errorf("cell %s = %q, want %q", tc.cell, got, tc.want)
		}
	}

	// The date cell carries a real date serial, not the source text.
	v, err := f.GetCellValue("Data", "D1")
	if err != nil {
		t.Fatal(err)
	}
	if v == "" {
		t.Error("date cell was not written")
	}
	if v == "31.12.2023" {
		t.Error("date written as plain text instead of a date cell")
	}
}

func TestBuildHeaderRow(t *testing.T) {
	t.Parallel()

	lines := parseLines(t, `1;2`)
	options := DefaultOptions()
	options.HeaderRow = []string{"Betrag", "Konto"}
	options.SheetName = "Buchungen"

	f, err := Build(lines, options)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if got, _ := f.GetCellValue("Buchungen", "A1"); got != "Betrag" {
		t.Errorf("A1 = %q, want header title", got)
	}
	if got, _ := f.GetCellValue("Buchungen", "A2"); got != "1" {
		t.Errorf("A2 = %q, want first data value", got)
	}
}

func TestWriteSavesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := Write(path, parseLines(t, `a;b`)); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Fatal("workbook file is empty")
	}
}
