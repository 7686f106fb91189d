package xlsxparser

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/lpkonstal/wz-generator/internal/config"
)

// writeXLSX builds a spreadsheet fixture with the given rows, starting at A1.
func writeXLSX(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save fixture: %v", err)
	}
}

func testSettings() config.ParserSettings {
	return config.Default().Parser
}

func TestParseFileBasic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.xlsx")
	writeXLSX(t, path, [][]interface{}{
		{"Lp", "Symbol", "Nazwa", "Ilość"},
		{1, "A1", "Widget", 5},
		{2, "B2", "Bracket", "2,5"},
	})

	result, err := ParseFile(path, testSettings())
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if result.HeaderRow != 1 {
		t.Errorf("header row = %d, want 1", result.HeaderRow)
	}
	if len(result.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(result.Items))
	}
	if result.Items[0].Symbol != "A1" || result.Items[0].Quantity != 5 {
		t.Errorf("item 0 = %+v", result.Items[0])
	}
	if result.Items[1].Quantity != 2.5 {
		t.Errorf("comma decimal quantity = %g, want 2.5", result.Items[1].Quantity)
	}
	if result.Items[1].Unit != "szt." {
		t.Errorf("unit = %q, want szt.", result.Items[1].Unit)
	}
}

// Column order must not matter, the header may sit below preamble rows, and
// the header match is case-, whitespace- and dot-tolerant.
func TestHeaderAnyOrderAndPosition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.xlsx")
	writeXLSX(t, path, [][]interface{}{
		{"Zestawienie czesci"},
		{},
		{"ILOŚĆ ", "Nazwa", "Lp.", "", " symbol"},
		{4, "Widget", 1, "", "A1"},
		{6, "Bracket", 2, "", "B2"},
	})

	result, err := ParseFile(path, testSettings())
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if result.HeaderRow != 3 {
		t.Errorf("header row = %d, want 3", result.HeaderRow)
	}
	if len(result.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(result.Items))
	}
	if result.Items[0].Symbol != "A1" || result.Items[0].Quantity != 4 || result.Items[0].Name != "Widget" {
		t.Errorf("item 0 = %+v", result.Items[0])
	}
}

func TestHeaderNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.xlsx")
	writeXLSX(t, path, [][]interface{}{
		{"Lp", "Symbol", "Nazwa"}, // Ilość missing
		{1, "A1", "Widget"},
	})

	_, err := ParseFile(path, testSettings())
	var hdrErr *HeaderNotFoundError
	if !errors.As(err, &hdrErr) {
		t.Fatalf("got %v, want *HeaderNotFoundError", err)
	}
	if len(hdrErr.Missing) != 1 || hdrErr.Missing[0] != config.KeyQuantity {
		t.Errorf("missing = %v, want [quantity]", hdrErr.Missing)
	}
}

func TestMalformedQuantitySkipsRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.xlsx")
	writeXLSX(t, path, [][]interface{}{
		{"Lp", "Symbol", "Nazwa", "Ilość"},
		{1, "A1", "Widget", 5},
		{2, "B2", "Bad", "dużo"},
		{3, "C3", "Negative", -2},
		{4, "D4", "Fine", 1},
	})

	result, err := ParseFile(path, testSettings())
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("got %d items, want 2 (malformed rows skipped)", len(result.Items))
	}
	if len(result.SkippedRows) != 2 {
		t.Fatalf("got %d skipped rows, want 2", len(result.SkippedRows))
	}
	if result.SkippedRows[0].Symbol != "B2" || result.SkippedRows[0].Row != 3 {
		t.Errorf("skipped[0] = %+v", result.SkippedRows[0])
	}
	if result.SkippedRows[1].Symbol != "C3" {
		t.Errorf("skipped[1] = %+v", result.SkippedRows[1])
	}
}

// Empty rows and rows without a symbol are skipped, not treated as the end
// of the data: rows after a gap still parse.
func TestGapsAndSymbollessRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.xlsx")
	writeXLSX(t, path, [][]interface{}{
		{"Lp", "Symbol", "Nazwa", "Ilość"},
		{1, "A1", "Widget", 5},
		{},
		{2, "", "No symbol", 3},
		{3, "B2", "After gap", 7},
	})

	result, err := ParseFile(path, testSettings())
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(result.Items))
	}
	if result.Items[1].Symbol != "B2" {
		t.Errorf("item after gap = %+v", result.Items[1])
	}
	if len(result.SkippedRows) != 0 {
		t.Errorf("symbolless row must be skipped silently, got %v", result.SkippedRows)
	}
}

// Missing Lp falls back to the running item count; that is not an error.
func TestLineNumberFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.xlsx")
	writeXLSX(t, path, [][]interface{}{
		{"Lp", "Symbol", "Nazwa", "Ilość"},
		{"", "A1", "Widget", 5},
		{"x", "B2", "Bracket", 3},
	})

	result, err := ParseFile(path, testSettings())
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if result.Items[0].LineNumber != 1 || result.Items[1].LineNumber != 2 {
		t.Errorf("line numbers = %d, %d, want 1, 2",
			result.Items[0].LineNumber, result.Items[1].LineNumber)
	}
}

// Parsing the same unchanged spreadsheet twice yields identical items.
func TestParseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.xlsx")
	writeXLSX(t, path, [][]interface{}{
		{"Lp", "Symbol", "Nazwa", "Ilość"},
		{1, "A1", "Widget", 5},
		{2, "B2", "Bracket", 3},
	})

	first, err := ParseFile(path, testSettings())
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	second, err := ParseFile(path, testSettings())
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if !reflect.DeepEqual(first.Items, second.Items) {
		t.Errorf("items differ between identical parses:\n%+v\n%+v", first.Items, second.Items)
	}
}

func TestOpenFailure(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.xlsx"), testSettings())
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
