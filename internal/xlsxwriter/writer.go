// =============================================================================
// CSV Toolkit - XLSX Writer Module
// =============================================================================
//
// This module writes parsed lines into an XLSX workbook. Typed values are
// written as native cell types so that spreadsheets receive real numbers,
// booleans and dates instead of text:
//
//   - Int      -> numeric cell
//   - Float    -> numeric cell
//   - Bool     -> boolean cell
//   - DateTime -> date cell with a date number format
//   - Text     -> string cell
//
// Fields whose interpretation was forced to text (leading apostrophe in the
// source) stay string cells by construction, which is exactly the behavior
// the marker asks for.
//
// =============================================================================

package xlsxwriter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/DSchuppelius/go-csv-toolkit/internal/inference"
	"github.com/DSchuppelius/go-csv-toolkit/internal/record"
)

// Options controls workbook generation.
type Options struct {
	// SheetName is the name of the sheet holding the data.
	// Default: "Data"
	SheetName string

	// DateFormat is the number format applied to date cells.
	// Default: "yyyy-mm-dd hh:mm:ss"
	DateFormat string

	// HeaderRow, when not empty, is written as the first row.
	HeaderRow []string
}

// DefaultOptions returns the default workbook options.
func DefaultOptions() Options {
	return Options{
		SheetName:  "Data",
		DateFormat: "yyyy-mm-dd hh:mm:ss",
	}
}

// Write writes the parsed lines to an XLSX file at path with default options.
func Write(path string, lines []*record.Line) error {
	return WriteWithOptions(path, lines, DefaultOptions())
}

// WriteWithOptions writes the parsed lines to an XLSX file at path.
func WriteWithOptions(path string, lines []*record.Line, options Options) error {
	f, err := Build(lines, options)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// Build creates the workbook in memory. The caller owns the returned file
// and must close it.
func Build(lines []*record.Line, options Options) (*excelize.File, error) {
	if options.SheetName == "" {
		options.SheetName = "Data"
	}
	if options.DateFormat == "" {
		options.DateFormat = "yyyy-mm-dd hh:mm:ss"
	}

	f := excelize.NewFile()

	// Rename the default sheet instead of juggling indices.
	defaultSheet := f.GetSheetName(0)
	if defaultSheet != options.SheetName {
		if err := f.SetSheetName(defaultSheet, options.SheetName); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &options.DateFormat})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create date style: %w", err)
	}

	row := 1

	// Write the header row if one is configured.
	if len(options.HeaderRow) > 0 {
		for col, title := range options.HeaderRow {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to address header cell: %w", err)
			}
			if err := f.SetCellValue(options.SheetName, cell, title); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to write header cell %s: %w", cell, err)
			}
		}
		row++
	}

	// Write the data rows.
	for _, line := range lines {
		for col, field := range line.Fields() {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to address cell: %w", err)
			}
			if err := writeCell(f, options.SheetName, cell, field, dateStyle); err != nil {
				f.Close()
				return nil, err
			}
		}
		row++
	}

	return f, nil
}

// writeCell writes one field as a typed cell.
func writeCell(f *excelize.File, sheet, cell string, field *record.Field, dateStyle int) error {
	var err error

	switch v := field.TypedValue().(type) {
	case inference.Int:
		err = f.SetCellValue(sheet, cell, int64(v))
	case inference.Float:
		err = f.SetCellValue(sheet, cell, v.Value)
	case inference.Bool:
		err = f.SetCellValue(sheet, cell, bool(v))
	case inference.DateTime:
		if err = f.SetCellValue(sheet, cell, v.Value); err == nil {
			err = f.SetCellStyle(sheet, cell, cell, dateStyle)
		}
	default:
		err = f.SetCellValue(sheet, cell, field.Value())
	}

	if err != nil {
		return fmt.Errorf("failed to write cell %s: %w", cell, err)
	}
	return nil
}
